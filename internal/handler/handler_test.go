package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"edenstone/internal/browse"
	"edenstone/internal/decor"
	"edenstone/internal/lead"
	"edenstone/internal/storefront"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

// catalogSource serves a fixed-size catalog and records every query.
type catalogSource struct {
	mu    sync.Mutex
	total int
	err   error
	calls []decor.ListQuery
}

func (s *catalogSource) ListDecors(_ context.Context, q decor.ListQuery) (*decor.ListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, q)
	if s.err != nil {
		return nil, s.err
	}

	n := max(0, min(q.Limit, s.total-q.Offset))
	items := make([]decor.APIDecor, 0, n)
	for i := q.Offset; i < q.Offset+n; i++ {
		items = append(items, decor.APIDecor{
			ID:        int64(i),
			Slug:      fmt.Sprintf("decor-%d", i),
			Name:      fmt.Sprintf("Decor %d", i),
			Brand:     "Staron",
			StoneType: "quartz",
			Surface:   "gloss",
			CreatedAt: 1700000000,
		})
	}
	total := s.total
	return &decor.ListResponse{Items: items, Total: &total}, nil
}

func (s *catalogSource) lastCall() decor.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func (s *catalogSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type MockDetail struct {
	mock.Mock
}

func (m *MockDetail) FetchBySlug(ctx context.Context, slug string) (*decor.DecorItem, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*decor.DecorItem), args.Error(1)
}

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Submit(ctx context.Context, form lead.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

// --- Helpers ---

type testServer struct {
	router http.Handler
	src    *catalogSource
	detail *MockDetail
	leads  *MockLeadService
	cookie *http.Cookie
}

func newTestServer(t *testing.T, total int) *testServer {
	t.Helper()

	src := &catalogSource{total: total}
	store := browse.NewStore(func() *decor.Controller { return decor.NewController(src) }, time.Minute)
	cat, err := storefront.Default()
	require.NoError(t, err)

	ts := &testServer{src: src, detail: new(MockDetail), leads: new(MockLeadService)}
	h := New(store, ts.detail, ts.leads, cat)

	r := chi.NewRouter()
	h.Routes(r)
	ts.router = r
	return ts
}

// do sends a request, carrying the session cookie between calls.
func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			ts.cookie = c
		}
	}
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) decor.View {
	t.Helper()
	var v decor.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// --- Tests ---

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, 0)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = ts.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stale_responses_total")
}

func TestCatalog_Session(t *testing.T) {
	ts := newTestServer(t, 57)

	w := ts.do(t, http.MethodGet, "/decor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ts.cookie)
	assert.True(t, ts.cookie.HttpOnly)

	v := decodeView(t, w)
	assert.Len(t, v.Items, 24)
	assert.Equal(t, 57, v.Total)
	assert.True(t, v.HasMore)
	assert.Equal(t, []decor.StoneType{decor.StoneQuartz}, v.Facets.StoneTypes)

	// same session, no second initial fetch
	w = ts.do(t, http.MethodGet, "/decor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, ts.src.callCount())

	for _, want := range []int{48, 57} {
		w = ts.do(t, http.MethodPost, "/decor/more", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, decodeView(t, w).Loaded)
	}
	assert.False(t, decodeView(t, w).HasMore)

	// nothing left to load
	ts.do(t, http.MethodPost, "/decor/more", nil)
	assert.Equal(t, 3, ts.src.callCount())
}

func TestCatalog_Filters(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.do(t, http.MethodGet, "/decor", nil)

	w := ts.do(t, http.MethodPut, "/decor/filters", decor.FiltersState{
		StoneTypes: []decor.StoneType{decor.StoneAcrylic, decor.StoneAcrylic},
		Brands:     []string{"Staron"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	q := ts.src.lastCall()
	assert.Equal(t, string(decor.StoneAcrylic), q.StoneType)
	assert.Equal(t, "Staron", q.Brand)
	assert.Equal(t, 0, q.Offset)

	v := decodeView(t, w)
	assert.Equal(t, []decor.StoneType{decor.StoneAcrylic}, v.Filters.StoneTypes)

	w = ts.do(t, http.MethodPost, "/decor/filters/toggle", toggleRequest{Dimension: "brand", Value: "Staron"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ts.src.lastCall().Brand)

	w = ts.do(t, http.MethodDelete, "/decor/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ts.src.lastCall().StoneType)
	assert.Empty(t, decodeView(t, w).Filters.StoneTypes)
}

func TestCatalog_BrandSearch(t *testing.T) {
	ts := newTestServer(t, 3)

	w := ts.do(t, http.MethodGet, "/decor?brand_q=star", nil)
	assert.Equal(t, []string{"Staron"}, decodeView(t, w).Facets.Brands)

	w = ts.do(t, http.MethodGet, "/decor?brand_q=corian", nil)
	assert.Equal(t, []string{}, decodeView(t, w).Facets.Brands)
}

func TestCatalog_InvalidInput(t *testing.T) {
	ts := newTestServer(t, 10)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"UnknownDimension", http.MethodPost, "/decor/filters/toggle", toggleRequest{Dimension: "color", Value: "red"}},
		{"UnknownSort", http.MethodPut, "/decor/sort", sortRequest{Sort: "popular"}},
		{"InvalidLimit", http.MethodPut, "/decor/limit", limitRequest{Limit: 13}},
		{"EmptyBody", http.MethodPut, "/decor/sort", nil},
		{"UnknownField", http.MethodPut, "/decor/limit", map[string]any{"size": 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Zero(t, ts.src.callCount())
}

func TestCatalog_SortAndLimit(t *testing.T) {
	ts := newTestServer(t, 100)

	w := ts.do(t, http.MethodPut, "/decor/sort", sortRequest{Sort: "price_desc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "price_desc", ts.src.lastCall().Sort)

	w = ts.do(t, http.MethodPut, "/decor/limit", limitRequest{Limit: 48})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 48, ts.src.lastCall().Limit)
	assert.Len(t, decodeView(t, w).Items, 48)
}

func TestCatalog_UpstreamError(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.src.err = &decor.StatusError{Code: 500}

	w := ts.do(t, http.MethodGet, "/decor", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	v := decodeView(t, w)
	assert.Equal(t, "HTTP 500", v.Error)
	assert.Empty(t, v.Items)
	assert.False(t, v.Loading)
}

func TestGetDecor(t *testing.T) {
	ts := newTestServer(t, 0)

	item := &decor.DecorItem{ID: "7", Slug: "quartz-white", Name: "Quartz White"}
	ts.detail.On("FetchBySlug", mock.Anything, "quartz-white").Return(item, nil)
	ts.detail.On("FetchBySlug", mock.Anything, "missing").Return(nil, decor.ErrNotFound)
	ts.detail.On("FetchBySlug", mock.Anything, "slow").Return(nil, fmt.Errorf("%w after 12s: %w", decor.ErrDetailTimeout, context.DeadlineExceeded))
	ts.detail.On("FetchBySlug", mock.Anything, "broken").Return(nil, &decor.StatusError{Code: 503})

	w := ts.do(t, http.MethodGet, "/decor/quartz-white", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got decor.DecorItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Quartz White", got.Name)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/decor/missing", nil).Code)
	assert.Equal(t, http.StatusGatewayTimeout, ts.do(t, http.MethodGet, "/decor/slow", nil).Code)
	assert.Equal(t, http.StatusBadGateway, ts.do(t, http.MethodGet, "/decor/broken", nil).Code)
	ts.detail.AssertExpectations(t)
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t, 0)

	w := ts.do(t, http.MethodGet, "/calculate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []storefront.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 8)

	w = ts.do(t, http.MethodGet, "/calculate/quartz-steps/stone", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp stonesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "quartz-steps", resp.Product.Slug)
	assert.Len(t, resp.Stones, 4)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/calculate/nothing/stone", nil).Code)
}

func TestSubmitLead(t *testing.T) {
	form := lead.Form{Phone: "+7 900 000-00-00", Email: "a@b.ru", Kitchen: true, Consent: true}

	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, 0)
		ts.leads.On("Submit", mock.Anything, form).Return(nil)

		w := ts.do(t, http.MethodPost, "/callback", form)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","state":"closed"}`, w.Body.String())
		ts.leads.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		ts := newTestServer(t, 0)

		w := ts.do(t, http.MethodPost, "/callback", lead.Form{Consent: true})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error":"Укажите номер телефона"}`, w.Body.String())
		ts.leads.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		ts := newTestServer(t, 0)
		ts.leads.On("Submit", mock.Anything, form).Return(errors.New("HTTP 500"))

		w := ts.do(t, http.MethodPost, "/callback", form)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"Не удалось отправить заявку"}`, w.Body.String())
	})

	t.Run("MalformedBody", func(t *testing.T) {
		ts := newTestServer(t, 0)

		req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewBufferString(`{"phone":`))
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(lead.ErrInvalidEmail))
	assert.Equal(t, http.StatusNotFound, statusFor(storefront.ErrProductNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("%w: 13", decor.ErrInvalidPageSize)))
	assert.Equal(t, http.StatusBadGateway, statusFor(fmt.Errorf("%w: HTTP 500", lead.ErrSubmitFailed)))
}
