package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docintel/internal/domain"
)

func TestVendorResult_MarshalSuccess(t *testing.T) {
	r := domain.VendorResult{
		Analysis: &domain.AnalysisResult{
			Service:               domain.ServiceAzure,
			ModelID:               "prebuilt-layout",
			ProcessingTimeSeconds: 1.5,
			TextContent:           "hello",
			Tables:                []domain.Table{},
			KeyValuePairs:         []domain.KeyValuePair{},
			PageCount:             1,
		},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, domain.ServiceAzure, m["service"])
	assert.Equal(t, "prebuilt-layout", m["model_or_processor_id"])
	assert.Equal(t, 1.5, m["processing_time_seconds"])
	assert.NotContains(t, m, "error")
}

func TestVendorResult_MarshalError(t *testing.T) {
	r := domain.VendorResult{Err: "connection refused"}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "connection refused"}`, string(data))
}

func TestVendorResult_UnmarshalRoundTrip(t *testing.T) {
	original := domain.VendorResult{
		Analysis: &domain.AnalysisResult{
			Service:     domain.ServiceGoogle,
			ModelID:     "proc-1",
			TextContent: "text",
		},
	}
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded domain.VendorResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Succeeded())
	assert.Equal(t, domain.ServiceGoogle, decoded.Analysis.Service)

	var decodedErr domain.VendorResult
	require.NoError(t, json.Unmarshal([]byte(`{"error": "boom"}`), &decodedErr))
	assert.False(t, decodedErr.Succeeded())
	assert.Equal(t, "boom", decodedErr.Err)
	assert.Nil(t, decodedErr.Analysis)
}

func TestVendorResult_Succeeded(t *testing.T) {
	var nilResult *domain.VendorResult
	assert.False(t, nilResult.Succeeded())
	assert.False(t, (&domain.VendorResult{}).Succeeded())
	assert.False(t, (&domain.VendorResult{Err: "x"}).Succeeded())
	assert.True(t, (&domain.VendorResult{Analysis: &domain.AnalysisResult{}}).Succeeded())
}

func TestComparisonMetrics_EmptyMarshalsToEmptyObject(t *testing.T) {
	data, err := json.Marshal(domain.ComparisonMetrics{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	assert.False(t, (&domain.ComparisonMetrics{}).Computed())
}

func TestComparisonRecord_BothSucceeded(t *testing.T) {
	ok := &domain.VendorResult{Analysis: &domain.AnalysisResult{}}
	failed := &domain.VendorResult{Err: "x"}

	rec := domain.ComparisonRecord{AzureResult: ok, GoogleResult: ok}
	assert.True(t, rec.BothSucceeded())

	rec.GoogleResult = failed
	assert.False(t, rec.BothSucceeded())

	rec = domain.ComparisonRecord{AzureResult: ok}
	assert.False(t, rec.BothSucceeded())
}

func TestRunSummary_SentinelShape(t *testing.T) {
	data, err := json.Marshal(domain.RunSummary{Message: "No successful comparisons found"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "No successful comparisons found"}`, string(data))
}

func TestRunSummary_PopulatedShape(t *testing.T) {
	s := domain.RunSummary{
		TotalDocuments:        3,
		SuccessfulComparisons: 2,
		Performance: &domain.PerformanceSummary{
			AzureAvgTime:      1.0,
			GoogleAvgTime:     2.0,
			AzureFastestCount: 2,
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "message")
	assert.Equal(t, float64(3), m["total_documents"])
	assert.Contains(t, m, "performance_summary")
}
