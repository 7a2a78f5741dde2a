package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-manager/internal/data/memory"
	"cinema-manager/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	config := &utils.Config{
		App: utils.AppConfig{Name: "cinema-manager", StorageDriver: utils.StorageDriverMemory},
	}
	return Wiring(memory.NewRepository(zap.NewNop()), config, zap.NewNop()).Router
}

func do(t *testing.T, router http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env), recorder.Body.String())
	return recorder.Code, env
}

func dataID(t *testing.T, env envelope) string {
	t.Helper()
	var payload struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.NotEmpty(t, payload.ID)
	return payload.ID
}

func TestSchedulingOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/api/movies", map[string]any{
		"title": "The Thing", "duration": 120, "release_year": 1982,
	})
	require.Equal(t, http.StatusCreated, code)
	movieID := dataID(t, env)

	code, env = do(t, router, http.MethodPost, "/api/halls", map[string]any{"name": "H", "capacity": 80})
	require.Equal(t, http.StatusCreated, code)
	hallID := dataID(t, env)

	code, env = do(t, router, http.MethodPost, "/api/screenings", map[string]any{
		"movie_id": movieID, "hall_id": hallID, "start_time": "2024-01-01T18:00",
	})
	require.Equal(t, http.StatusCreated, code)
	var screening struct {
		ID      string `json:"id"`
		EndTime string `json:"end_time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &screening))
	assert.Equal(t, "2024-01-01T20:00", screening.EndTime)

	code, env = do(t, router, http.MethodPost, "/api/screenings", map[string]any{
		"movie_id": movieID, "hall_id": hallID, "start_time": "2024-01-01T19:00",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Status)
	assert.Contains(t, string(env.Errors), screening.ID)

	code, _ = do(t, router, http.MethodPost, "/api/screenings", map[string]any{
		"movie_id": movieID, "hall_id": hallID, "start_time": "2024-01-01T20:00",
	})
	assert.Equal(t, http.StatusCreated, code)

	code, env = do(t, router, http.MethodPost, "/api/screenings/overlap", map[string]any{
		"hall_id": hallID, "start_time": "2024-01-01T19:30", "end_time": "2024-01-01T19:45",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"overlap":true`)

	code, _ = do(t, router, http.MethodPost, "/api/screenings/overlap", map[string]any{
		"hall_id": hallID, "start_time": "2024-01-01T19:30", "end_time": "2024-01-01T19:30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = do(t, router, http.MethodGet, "/api/screenings?hall_id="+hallID+"&from=2024-01-01T19:00", nil)
	require.Equal(t, http.StatusOK, code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Len(t, listed, 1)

	code, _ = do(t, router, http.MethodDelete, "/api/movies/"+movieID, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestReservationsOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	_, env := do(t, router, http.MethodPost, "/api/movies", map[string]any{"title": "Ran", "duration": 162})
	movieID := dataID(t, env)
	_, env = do(t, router, http.MethodPost, "/api/halls", map[string]any{"name": "Main", "capacity": 10})
	hallID := dataID(t, env)
	_, env = do(t, router, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Akira", "last_name": "Kurosawa", "email": "akira@example.com",
	})
	customerID := dataID(t, env)
	_, env = do(t, router, http.MethodPost, "/api/screenings", map[string]any{
		"movie_id": movieID, "hall_id": hallID, "start_time": "2030-05-01T18:00",
	})
	screeningID := dataID(t, env)

	code, env := do(t, router, http.MethodPost, "/api/reservations", map[string]any{
		"customer_id": customerID, "screening_id": screeningID, "reservation_time": "2030-04-01T10:00",
	})
	require.Equal(t, http.StatusCreated, code)
	reservationID := dataID(t, env)

	code, env = do(t, router, http.MethodGet, "/api/customers/"+customerID+"/reservations", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), reservationID)

	code, _ = do(t, router, http.MethodDelete, "/api/screenings/"+screeningID, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, router, http.MethodDelete, "/api/reservations/"+reservationID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, router, http.MethodDelete, "/api/reservations/"+reservationID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, router, http.MethodDelete, "/api/screenings/"+screeningID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, router, http.MethodPost, "/api/reservations", map[string]any{
		"customer_id": customerID, "screening_id": screeningID,
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestValidationAndPagingOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/api/customers", map[string]any{"first_name": "", "email": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Errors), "last_name")

	for _, name := range []string{"C", "A", "B"} {
		code, _ := do(t, router, http.MethodPost, "/api/halls", map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env = do(t, router, http.MethodGet, "/api/halls?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "C", page.Data[0].Name)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	code, _ = do(t, router, http.MethodGet, "/api/halls?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/api/screenings/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodGet, "/api/halls/6f1c2d1e-8a0b-4c55-9c8e-2f7f3f1b0a11", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "memory")
}
