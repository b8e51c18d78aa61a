package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/customer-segmentation/internal/controller"
	"github.com/unclebandit/customer-segmentation/internal/model"
	"github.com/unclebandit/customer-segmentation/internal/repository"
	"github.com/unclebandit/customer-segmentation/internal/service"
)

// --- Mock Pipelines ---

type MockPredictionPipeline struct {
	labels []int
	err    error
}

func (m *MockPredictionPipeline) RunPipeline(ctx context.Context, input []float64) ([]int, error) {
	return m.labels, m.err
}

type MockTrainPipeline struct {
	err error
}

func (m *MockTrainPipeline) RunPipeline(ctx context.Context) (*model.ClusterModel, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.ClusterModel{Version: "v1", K: 4}, nil
}

type MockQueue struct{}

func (MockQueue) Publish(topic string, payload any) error                         { return nil }
func (MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

func validCustomer() map[string]interface{} {
	return map[string]interface{}{
		"Age": 45, "Education": 1, "Merital_Status": 1, "Parental_Status": 1, "Children": 2,
		"Income": 58138.0, "Total_Spending": 1617.0, "Days_as_Customer": 849, "Recency": 58, "Wines": 635,
		"Fruits": 88, "Meat": 546, "Fish": 172, "Sweets": 88, "Gold": 88, "Catalog": 10,
		"Store": 4, "Discount_Purchases": 3, "Total_Promo": 0, "NumWebVisitsMonth": 7,
	}
}

func postCustomer(t *testing.T, ctrl *controller.SegmentationController, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	w := httptest.NewRecorder()
	ctrl.Predict(w, req)
	return w
}

// --- Tests ---

func TestPredictHandler(t *testing.T) {
	svc := &service.SegmentationService{Predictor: &MockPredictionPipeline{labels: []int{2}}}
	ctrl := &controller.SegmentationController{Service: svc}

	w := postCustomer(t, ctrl, validCustomer())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["predicted_cluster"] != float64(2) {
		t.Errorf("expected predicted_cluster 2, got %v", res["predicted_cluster"])
	}
	if len(res) != 1 {
		t.Errorf("expected only predicted_cluster in body, got %v", res)
	}
}

func TestPredictZeroValuesAreAccepted(t *testing.T) {
	svc := &service.SegmentationService{Predictor: &MockPredictionPipeline{labels: []int{0}}}
	ctrl := &controller.SegmentationController{Service: svc}

	body := validCustomer()
	body["Children"] = 0
	body["Total_Promo"] = 0

	if w := postCustomer(t, ctrl, body); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPredictMissingField(t *testing.T) {
	svc := &service.SegmentationService{Predictor: &MockPredictionPipeline{labels: []int{2}}}
	ctrl := &controller.SegmentationController{Service: svc}

	body := validCustomer()
	delete(body, "Income")
	w := postCustomer(t, ctrl, body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var res struct {
		Detail []struct {
			Loc  []interface{} `json:"loc"`
			Msg  string        `json:"msg"`
			Type string        `json:"type"`
		} `json:"detail"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(res.Detail) != 1 {
		t.Fatalf("expected one validation error, got %+v", res.Detail)
	}
	if res.Detail[0].Loc[1] != "Income" || res.Detail[0].Type != "value_error.missing" {
		t.Errorf("unexpected detail: %+v", res.Detail[0])
	}
}

func TestPredictWrongType(t *testing.T) {
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{Predictor: &MockPredictionPipeline{labels: []int{1}}}}

	body := validCustomer()
	body["Age"] = "forty"
	w := postCustomer(t, ctrl, body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "type_error.integer") {
		t.Errorf("expected integer type error, got %s", w.Body.String())
	}
}

func TestPredictMalformedJSON(t *testing.T) {
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{}}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Age": 4`))
	w := httptest.NewRecorder()
	ctrl.Predict(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "value_error.jsondecode") {
		t.Errorf("expected decode error, got %s", w.Body.String())
	}
}

func TestPredictFloatForInteger(t *testing.T) {
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{Predictor: &MockPredictionPipeline{labels: []int{1}}}}

	body := validCustomer()
	body["Recency"] = 12.5
	w := postCustomer(t, ctrl, body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestPredictPipelineFailure(t *testing.T) {
	svc := &service.SegmentationService{Predictor: &MockPredictionPipeline{err: errors.New("model artifact missing")}}
	ctrl := &controller.SegmentationController{Service: svc}

	w := postCustomer(t, ctrl, validCustomer())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var res map[string]interface{}
	json.NewDecoder(w.Body).Decode(&res)
	if res["status"] != false || res["error"] != "model artifact missing" {
		t.Errorf("unexpected body: %v", res)
	}
}

func TestTrainHandler(t *testing.T) {
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{Trainer: &MockTrainPipeline{}}}

	w := httptest.NewRecorder()
	ctrl.Train(w, httptest.NewRequest(http.MethodGet, "/train", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var res map[string]interface{}
	json.NewDecoder(w.Body).Decode(&res)
	if res["status"] != true || res["message"] != "Training successful!" {
		t.Errorf("unexpected body: %v", res)
	}
}

func TestTrainHandlerFailure(t *testing.T) {
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{
		Trainer: &MockTrainPipeline{err: errors.New("could not reach MongoDB")},
	}}

	w := httptest.NewRecorder()
	ctrl.Train(w, httptest.NewRequest(http.MethodGet, "/train", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var res map[string]interface{}
	json.NewDecoder(w.Body).Decode(&res)
	if res["status"] != false {
		t.Errorf("expected status false, got %v", res["status"])
	}
	if res["error"] != "could not reach MongoDB" {
		t.Errorf("expected pipeline error message, got %v", res["error"])
	}
}

func TestTrainingJobLifecycle(t *testing.T) {
	runs := repository.NewTrainingRunRepositoryMemory()
	svc := &service.SegmentationService{Trainer: &MockTrainPipeline{}, Runs: runs, Queue: MockQueue{}}
	ctrl := &controller.SegmentationController{Service: svc}

	r := chi.NewRouter()
	r.Post("/train/jobs", ctrl.EnqueueTraining)
	r.Get("/train/jobs/{id}", ctrl.GetTrainingRun)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/train/jobs", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	var run model.TrainingRun
	if err := json.NewDecoder(w.Body).Decode(&run); err != nil {
		t.Fatalf("failed to decode run: %v", err)
	}
	if run.Status != model.RunPending || run.ID == "" {
		t.Fatalf("unexpected run: %+v", run)
	}

	if err := svc.RunTrainingJob(context.Background(), run.ID); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/train/jobs/"+run.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&run)
	if run.Status != model.RunSucceeded || run.ModelVersion != "v1" {
		t.Errorf("unexpected run after training: %+v", run)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/train/jobs/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown run, got %d", w.Code)
	}
}

func TestEnqueueWithoutQueue(t *testing.T) {
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{}}

	w := httptest.NewRecorder()
	ctrl.EnqueueTraining(w, httptest.NewRequest(http.MethodPost, "/train/jobs", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestGetModel(t *testing.T) {
	models := repository.NewModelRepositoryMemory()
	ctrl := &controller.SegmentationController{Service: &service.SegmentationService{Models: models}}

	w := httptest.NewRecorder()
	ctrl.GetModel(w, httptest.NewRequest(http.MethodGet, "/model", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before training, got %d", w.Code)
	}

	models.Save(context.Background(), &model.ClusterModel{
		Version:   "v2",
		K:         3,
		Centroids: [][]float64{{0}, {1}, {2}},
		TrainedAt: time.Now(),
	})

	w = httptest.NewRecorder()
	ctrl.GetModel(w, httptest.NewRequest(http.MethodGet, "/model", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var res map[string]interface{}
	json.NewDecoder(w.Body).Decode(&res)
	if res["version"] != "v2" || res["k"] != float64(3) {
		t.Errorf("unexpected summary: %v", res)
	}
	if _, leaked := res["centroids"]; leaked {
		t.Errorf("summary must not expose centroids")
	}
}
