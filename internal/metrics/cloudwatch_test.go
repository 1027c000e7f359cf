package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairweather/internal/types"
)

type mockCloudWatchClient struct {
	mu        sync.Mutex
	calls     []*cloudwatch.PutMetricDataInput
	returnErr error
}

func (m *mockCloudWatchClient) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

type mockLogger struct {
	errors []string
}

func (l *mockLogger) Info(string, ...any)        {}
func (l *mockLogger) Warn(string, ...any)        {}
func (l *mockLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }
func (l *mockLogger) With(...any) types.Logger   { return l }

func datum(t *testing.T, in *cloudwatch.PutMetricDataInput, name string, dims map[string]string) cwtypes.MetricDatum {
	t.Helper()
	for _, d := range in.MetricData {
		if aws.ToString(d.MetricName) != name {
			continue
		}
		if hasDims(d.Dimensions, dims) {
			return d
		}
	}
	t.Fatalf("metric %s %v not found", name, dims)
	return cwtypes.MetricDatum{}
}

func hasDims(got []cwtypes.Dimension, want map[string]string) bool {
	if len(got) != len(want) {
		return false
	}
	for _, d := range got {
		if want[aws.ToString(d.Name)] != aws.ToString(d.Value) {
			return false
		}
	}
	return true
}

func TestRecordPlan(t *testing.T) {
	cw := &mockCloudWatchClient{}
	p := NewCloudWatchPublisher(cw, "FairweatherTest", &mockLogger{})

	p.RecordPlan(context.Background(), types.PlanStats{
		Days:        3,
		Suggestions: 14,
		EmptyDays:   1,
		HeroLevels:  map[string]int{"perfect": 1, "indoor": 1},
		Latency:     42 * time.Millisecond,
	})

	require.Len(t, cw.calls, 1)
	in := cw.calls[0]
	assert.Equal(t, "FairweatherTest", aws.ToString(in.Namespace))
	assert.Len(t, in.MetricData, 5)

	assert.Equal(t, 14.0, aws.ToFloat64(datum(t, in, types.MetricSuggestionsGenerated, nil).Value))
	assert.Equal(t, 1.0, aws.ToFloat64(datum(t, in, types.MetricEmptyDay, nil).Value))

	lat := datum(t, in, types.MetricPlanLatency, nil)
	assert.Equal(t, 42.0, aws.ToFloat64(lat.Value))
	assert.Equal(t, cwtypes.StandardUnitMilliseconds, lat.Unit)

	assert.Equal(t, 1.0, aws.ToFloat64(datum(t, in, types.MetricHeroSelected, map[string]string{types.DimLevel: "perfect"}).Value))
	assert.Equal(t, 1.0, aws.ToFloat64(datum(t, in, types.MetricHeroSelected, map[string]string{types.DimLevel: "indoor"}).Value))
}

func TestRecordRequest(t *testing.T) {
	cw := &mockCloudWatchClient{}
	p := NewCloudWatchPublisher(cw, "", &mockLogger{})

	p.RecordRequest("POST", "/v1/suggestions", "200", 15*time.Millisecond)

	require.Len(t, cw.calls, 1)
	in := cw.calls[0]
	assert.Equal(t, types.MetricNamespace, aws.ToString(in.Namespace))

	dims := map[string]string{types.DimEndpoint: "/v1/suggestions", types.DimMethod: "POST", types.DimStatus: "200"}
	assert.Equal(t, 15.0, aws.ToFloat64(datum(t, in, types.MetricAPILatency, dims).Value))
	assert.Equal(t, 1.0, aws.ToFloat64(datum(t, in, types.MetricAPIRequestCount, dims).Value))
}

func TestRecordCatalog(t *testing.T) {
	cw := &mockCloudWatchClient{}
	NewCloudWatchPublisher(cw, "", &mockLogger{}).RecordCatalog(context.Background(), "s3", 42)

	require.Len(t, cw.calls, 1)
	d := datum(t, cw.calls[0], types.MetricCatalogSize, map[string]string{types.DimSource: "s3"})
	assert.Equal(t, 42.0, aws.ToFloat64(d.Value))
}

func TestPublishFailuresAreLogged(t *testing.T) {
	cw := &mockCloudWatchClient{returnErr: errors.New("throttled")}
	logger := &mockLogger{}
	p := NewCloudWatchPublisher(cw, "", logger)

	p.RecordPlan(context.Background(), types.PlanStats{})
	p.RecordRequest("GET", "/health", "200", time.Millisecond)

	assert.Equal(t, []string{"failed to record plan metrics", "failed to record request metric"}, logger.errors)
}
