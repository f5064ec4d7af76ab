package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/wanderoute/pkg/datastructure"
	"github.com/lintang-b-s/wanderoute/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// NavigationEngine is the subset of service.NavigationService the HTTP
// handlers depend on, kept as an interface so the handlers can be tested
// against a fake without standing up a real graph or badger store.
type NavigationEngine interface {
	SnapLocation(ctx context.Context, lat, lon float64) (int64, float64, error)
	ShortestRoute(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (datastructure.RouteResult, error)
	PenalizedRoute(ctx context.Context, srcLat, srcLon, dstLat, dstLon, penalty float64) (datastructure.RouteResult, error)
	NoveltyRoute(ctx context.Context, srcLat, srcLon, dstLat, dstLon, minNovelty, maxOverhead float64) (datastructure.RouteResult, error)
	RecordWalkedEdge(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) error
	NearbyWalkedStreets(ctx context.Context, lat, lon float64) ([]datastructure.EdgeKey, error)
}

var _ NavigationEngine = (*service.NavigationService)(nil)

type NavigationHandler struct {
	svc      NavigationEngine
	validate *validator.Validate
}

// NavigatorRouter mounts every walking-route endpoint under /api on r.
func NavigatorRouter(r *chi.Mux, svc NavigationEngine, m *Metrics) {
	handler := &NavigationHandler{svc: svc, validate: validator.New()}

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Post("/snap", handler.Snap)
			r.Post("/route/shortest", handler.ShortestRoute)
			r.Post("/route/penalized", handler.PenalizedRoute)
			r.Post("/route/novelty", handler.NoveltyRoute)
			r.Post("/walked/record", handler.RecordWalkedEdge)
			r.Get("/walked/nearby", handler.NearbyWalkedStreets)
		})
	})
}

// validateBody binds and validates r's JSON body into data, rendering an
// error response and returning false if either step fails.
func (h *NavigationHandler) validateBody(w http.ResponseWriter, r *http.Request, data render.Binder) bool {
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return false
	}
	if err := h.validate.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, translateValidationError(err)))
		return false
	}
	return true
}

// CoordinateRequest model info
//
//	@Description	a single (lat, lon) point to snap onto the street graph
type CoordinateRequest struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (s *CoordinateRequest) Bind(r *http.Request) error { return nil }

// SnapResponse model info
//
//	@Description	the nearest graph node to a requested point
type SnapResponse struct {
	NodeID           int64   `json:"nodeId"`
	DistanceMeters   float64 `json:"distanceMeters"`
}

// Snap
//
//	@Summary		snap a raw GPS point onto the nearest street-graph node
//	@Description	snap a raw GPS point onto the nearest street-graph node
//	@Tags			navigation
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	CoordinateRequest	true	"point to snap"
//	@Router			/snap [post]
//	@Success		200	{object}	SnapResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) Snap(w http.ResponseWriter, r *http.Request) {
	data := &CoordinateRequest{}
	if !h.validateBody(w, r, data) {
		return
	}

	nodeID, dist, err := h.svc.SnapLocation(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, errFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &SnapResponse{NodeID: nodeID, DistanceMeters: dist})
}

// RouteRequest model info
//
//	@Description	source and destination point of a route query
type RouteRequest struct {
	SourceLat float64 `json:"sourceLat" validate:"required,lt=90,gt=-90"`
	SourceLon float64 `json:"sourceLon" validate:"required,lt=180,gt=-180"`
	TargetLat float64 `json:"targetLat" validate:"required,lt=90,gt=-90"`
	TargetLon float64 `json:"targetLon" validate:"required,lt=180,gt=-180"`
}

func (s *RouteRequest) Bind(r *http.Request) error { return nil }

// ShortestRoute
//
//	@Summary		shortest walking route between two points
//	@Description	shortest walking route between two points
//	@Tags			navigation
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	RouteRequest	true	"source and target point"
//	@Router			/route/shortest [post]
//	@Success		200	{object}	datastructure.RouteResult
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) ShortestRoute(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if !h.validateBody(w, r, data) {
		return
	}

	result, err := h.svc.ShortestRoute(r.Context(), data.SourceLat, data.SourceLon, data.TargetLat, data.TargetLon)
	if err != nil {
		render.Render(w, r, errFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &result)
}

// PenalizedRouteRequest model info
//
//	@Description	source/target point plus a multiplier applied to already-walked edges
type PenalizedRouteRequest struct {
	SourceLat float64 `json:"sourceLat" validate:"required,lt=90,gt=-90"`
	SourceLon float64 `json:"sourceLon" validate:"required,lt=180,gt=-180"`
	TargetLat float64 `json:"targetLat" validate:"required,lt=90,gt=-90"`
	TargetLon float64 `json:"targetLon" validate:"required,lt=180,gt=-180"`
	Penalty   float64 `json:"penalty" validate:"required,gt=0"`
}

func (s *PenalizedRouteRequest) Bind(r *http.Request) error { return nil }

// PenalizedRoute
//
//	@Summary		shortest route that avoids already-walked streets where possible
//	@Description	shortest route that avoids already-walked streets where possible, by multiplying their weight by penalty
//	@Tags			navigation
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	PenalizedRouteRequest	true	"source/target point and penalty factor"
//	@Router			/route/penalized [post]
//	@Success		200	{object}	datastructure.RouteResult
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) PenalizedRoute(w http.ResponseWriter, r *http.Request) {
	data := &PenalizedRouteRequest{}
	if !h.validateBody(w, r, data) {
		return
	}

	result, err := h.svc.PenalizedRoute(r.Context(), data.SourceLat, data.SourceLon, data.TargetLat, data.TargetLon, data.Penalty)
	if err != nil {
		render.Render(w, r, errFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &result)
}

// NoveltyRouteRequest model info
//
//	@Description	source/target point plus novelty-search tuning parameters
type NoveltyRouteRequest struct {
	SourceLat   float64 `json:"sourceLat" validate:"required,lt=90,gt=-90"`
	SourceLon   float64 `json:"sourceLon" validate:"required,lt=180,gt=-180"`
	TargetLat   float64 `json:"targetLat" validate:"required,lt=90,gt=-90"`
	TargetLon   float64 `json:"targetLon" validate:"required,lt=180,gt=-180"`
	MinNovelty  float64 `json:"minNovelty" validate:"gte=0,lte=1"`
	MaxOverhead float64 `json:"maxOverhead" validate:"gte=0"`
}

func (s *NoveltyRouteRequest) Bind(r *http.Request) error { return nil }

// NoveltyRoute
//
//	@Summary		a route that favors streets not yet walked, within an overhead budget
//	@Description	a route that favors streets not yet walked, within an overhead budget
//	@Tags			navigation
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	NoveltyRouteRequest	true	"source/target point and novelty/overhead targets"
//	@Router			/route/novelty [post]
//	@Success		200	{object}	datastructure.RouteResult
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) NoveltyRoute(w http.ResponseWriter, r *http.Request) {
	data := &NoveltyRouteRequest{}
	if !h.validateBody(w, r, data) {
		return
	}

	result, err := h.svc.NoveltyRoute(r.Context(), data.SourceLat, data.SourceLon, data.TargetLat, data.TargetLon,
		data.MinNovelty, data.MaxOverhead)
	if err != nil {
		render.Render(w, r, errFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &result)
}

// WalkedEdgeRequest model info
//
//	@Description	the two endpoints of a street segment just walked
type WalkedEdgeRequest struct {
	SourceLat float64 `json:"sourceLat" validate:"required,lt=90,gt=-90"`
	SourceLon float64 `json:"sourceLon" validate:"required,lt=180,gt=-180"`
	TargetLat float64 `json:"targetLat" validate:"required,lt=90,gt=-90"`
	TargetLon float64 `json:"targetLon" validate:"required,lt=180,gt=-180"`
}

func (s *WalkedEdgeRequest) Bind(r *http.Request) error { return nil }

// RecordWalkedEdge
//
//	@Summary		mark a street segment as walked
//	@Description	mark a street segment as walked, so future novelty/penalized routes can avoid it
//	@Tags			walkhistory
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body	WalkedEdgeRequest	true	"segment endpoints"
//	@Router			/walked/record [post]
//	@Success		204
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) RecordWalkedEdge(w http.ResponseWriter, r *http.Request) {
	data := &WalkedEdgeRequest{}
	if !h.validateBody(w, r, data) {
		return
	}

	if err := h.svc.RecordWalkedEdge(r.Context(), data.SourceLat, data.SourceLon, data.TargetLat, data.TargetLon); err != nil {
		render.Render(w, r, errFromService(err))
		return
	}

	render.NoContent(w, r)
}

// NearbyWalkedStreetsResponse model info
//
//	@Description	previously walked street segments found near a point
type NearbyWalkedStreetsResponse struct {
	Edges []datastructure.EdgeKey `json:"edges"`
}

// NearbyWalkedStreets
//
//	@Summary		list previously walked streets near a point
//	@Description	list previously walked streets near a point
//	@Tags			walkhistory
//	@Produce		application/json
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Router			/walked/nearby [get]
//	@Success		200	{object}	NearbyWalkedStreetsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) NearbyWalkedStreets(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseLatLonQuery(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	edges, err := h.svc.NearbyWalkedStreets(r.Context(), lat, lon)
	if err != nil {
		render.Render(w, r, errFromService(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearbyWalkedStreetsResponse{Edges: edges})
}

func parseLatLonQuery(r *http.Request) (lat, lon float64, err error) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, errors.New("lat and lon query parameters are required")
	}
	if _, err := fmt.Sscanf(latStr, "%g", &lat); err != nil {
		return 0, 0, fmt.Errorf("invalid lat: %w", err)
	}
	if _, err := fmt.Sscanf(lonStr, "%g", &lon); err != nil {
		return 0, 0, fmt.Errorf("invalid lon: %w", err)
	}
	return lat, lon, nil
}

// ErrResponse model info
//
//	@Description	a uniform error envelope for every failed request
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "invalid request",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, translated []error) render.Renderer {
	vv := make([]string, 0, len(translated))
	for _, v := range translated {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "invalid request",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "not found",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "internal server error",
		ErrorText:      err.Error(),
	}
}

// errFromService classifies a service-layer error into the right HTTP
// status: unreachable locations are a client-facing 404, everything else
// is treated as an internal error.
func errFromService(err error) render.Renderer {
	if errors.Is(err, service.ErrLocationNotCovered) {
		return ErrNotFound(err)
	}
	return ErrInternalServerError(err)
}

func translateValidationError(err error) []error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{err}
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validator.New(), trans)

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		errs = append(errs, fmt.Errorf(e.Translate(trans)))
	}
	return errs
}
