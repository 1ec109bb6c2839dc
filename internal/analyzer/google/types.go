package google

import (
	"bytes"
	"strconv"
)

// Wire types for the Document AI v1 process endpoint. The proto3 JSON
// mapping encodes int64 fields as strings; anchorIndex accepts both forms.

type processRequest struct {
	RawDocument rawDocument `json:"rawDocument"`
}

type rawDocument struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

type processResponse struct {
	Document *document `json:"document"`
}

type document struct {
	Text     string   `json:"text"`
	Pages    []page   `json:"pages"`
	Entities []entity `json:"entities"`
}

type page struct {
	PageNumber int         `json:"pageNumber"`
	Tables     []table     `json:"tables"`
	FormFields []formField `json:"formFields"`
}

type table struct {
	HeaderRows []tableRow `json:"headerRows"`
	BodyRows   []tableRow `json:"bodyRows"`
}

type tableRow struct {
	Cells []tableCell `json:"cells"`
}

type tableCell struct {
	Layout *layout `json:"layout"`
}

type formField struct {
	FieldName  *layout `json:"fieldName"`
	FieldValue *layout `json:"fieldValue"`
}

type layout struct {
	TextAnchor *textAnchor `json:"textAnchor"`
	Confidence float64     `json:"confidence"`
}

type textAnchor struct {
	TextSegments []textSegment `json:"textSegments"`
}

type textSegment struct {
	StartIndex anchorIndex `json:"startIndex"`
	EndIndex   anchorIndex `json:"endIndex"`
}

type entity struct {
	Type            string           `json:"type"`
	MentionText     string           `json:"mentionText"`
	Confidence      float64          `json:"confidence"`
	NormalizedValue *normalizedValue `json:"normalizedValue"`
}

type normalizedValue struct {
	Text string `json:"text"`
}

// anchorIndex is an int64 that unmarshals from either a JSON number or the
// proto3 string form ("42").
type anchorIndex int64

func (i *anchorIndex) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*i = anchorIndex(v)
	return nil
}

func (i anchorIndex) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(i), 10)), nil
}
