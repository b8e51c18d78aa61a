package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTraining(t *testing.T) {
	before := testutil.ToFloat64(trainingRuns.WithLabelValues("succeeded"))
	ObserveTraining(0.2, 4, nil)

	if got := testutil.ToFloat64(trainingRuns.WithLabelValues("succeeded")); got != before+1 {
		t.Errorf("expected %v succeeded runs, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(modelClusters); got != 4 {
		t.Errorf("expected clusters gauge 4, got %v", got)
	}

	ObserveTraining(0.1, 0, errors.New("boom"))
	if got := testutil.ToFloat64(modelClusters); got != 4 {
		t.Errorf("failed run must not touch clusters gauge, got %v", got)
	}
}

func TestObservePrediction(t *testing.T) {
	before := testutil.ToFloat64(assignments.WithLabelValues("2"))
	ObservePrediction(2, nil)

	if got := testutil.ToFloat64(assignments.WithLabelValues("2")); got != before+1 {
		t.Errorf("expected %v assignments, got %v", before+1, got)
	}
}

func TestHandler(t *testing.T) {
	ObservePrediction(1, nil)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	if !strings.Contains(string(body), "segmentation_prediction_requests_total") {
		t.Errorf("metric missing from exposition")
	}
}
