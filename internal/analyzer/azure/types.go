package azure

// Wire types for the Azure Document Intelligence REST API
// (documentModels/{modelId}:analyze + operation polling).

// analyzeOperation is the polled operation document.
type analyzeOperation struct {
	Status        string         `json:"status"`
	Error         *apiError      `json:"error,omitempty"`
	AnalyzeResult *analyzeResult `json:"analyzeResult,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// analyzeResult is the analyzeResult part of a completed operation.
type analyzeResult struct {
	APIVersion    string         `json:"apiVersion"`
	ModelID       string         `json:"modelId"`
	Content       string         `json:"content"`
	Pages         []page         `json:"pages"`
	Tables        []table        `json:"tables"`
	KeyValuePairs []keyValuePair `json:"keyValuePairs"`
	Paragraphs    []paragraph    `json:"paragraphs"`
}

type page struct {
	PageNumber int     `json:"pageNumber"`
	Angle      float64 `json:"angle"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Unit       string  `json:"unit"`
}

type table struct {
	RowCount    int         `json:"rowCount"`
	ColumnCount int         `json:"columnCount"`
	Cells       []tableCell `json:"cells"`
}

type tableCell struct {
	Kind        string   `json:"kind,omitempty"`
	RowIndex    int      `json:"rowIndex"`
	ColumnIndex int      `json:"columnIndex"`
	RowSpan     int      `json:"rowSpan,omitempty"`
	ColumnSpan  int      `json:"columnSpan,omitempty"`
	Content     string   `json:"content"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

type keyValuePair struct {
	Key        *kvElement `json:"key"`
	Value      *kvElement `json:"value"`
	Confidence *float64   `json:"confidence,omitempty"`
}

type kvElement struct {
	Content string `json:"content"`
}

type paragraph struct {
	Content string `json:"content"`
	Role    string `json:"role,omitempty"`
}
