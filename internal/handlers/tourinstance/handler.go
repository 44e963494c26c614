package tourinstance

import (
	"net/http"

	"peakpath/infras/otel"
	"peakpath/internal/domains/tourinstance/model"
	"peakpath/internal/domains/tourinstance/model/dto"
	"peakpath/internal/domains/tourinstance/service"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/validator"
	"peakpath/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TourInstance
	otel    otel.Otel
}

func New(service service.TourInstance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tourinstances", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTourInstance)
		routerGroup.Get("/", handler.GetTourInstances)
		routerGroup.Get("/{id}", handler.GetTourInstanceByID)
		routerGroup.Patch("/{id}", handler.UpdateTourInstance)
		routerGroup.Delete("/{id}", handler.DeleteTourInstance)
	})
}

// CreateTourInstance schedules a new departure of a tour.
// @Summary Create a new tour instance
// @Description Schedule a dated occurrence of a tour with its own capacity.
// @Tags TourInstance
// @Accept json
// @Produce json
// @Param request body dto.CreateTourInstanceRequest true "Create Tour Instance Request"
// @Success 201 {object} response.Message "Tour instance created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tourinstances [post]
// @Security BearerAuth
func (handler *Handler) CreateTourInstance(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTourInstance")
	defer scope.End()

	req := dto.CreateTourInstanceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tour instance")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour instance created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Tour instance created successfully")
}

// GetTourInstances retrieves tour instances based on query parameters.
// @Summary Get all tour instances
// @Description Retrieve tour instances with optional filtering and pagination.
// @Tags TourInstance
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param tour_id query string false "Filter by tour ID"
// @Param status query string false "Filter by status (scheduled, full, cancelled, completed)"
// @Success 200 {object} response.Data[dto.GetTourInstancesResponse] "List of tour instances"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tourinstances [get]
func (handler *Handler) GetTourInstances(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourInstances")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tourID := r.URL.Query().Get(model.FieldTourID)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if tourID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTourID,
			Operator: gDto.FilterOperatorEq,
			Value:    tourID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	instances, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tour instances")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour instances retrieved successfully")

	response.WithJSON(w, http.StatusOK, instances)
}

// GetTourInstanceByID retrieves a tour instance by its ID.
// @Summary Get a tour instance by ID
// @Description Retrieve a tour instance, including remaining capacity.
// @Tags TourInstance
// @Accept json
// @Produce json
// @Param id path string true "Tour Instance ID"
// @Success 200 {object} response.Data[dto.TourInstanceResponse] "Tour instance details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tourinstances/{id} [get]
func (handler *Handler) GetTourInstanceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourInstanceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	instance, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tour instance by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour instance retrieved successfully")

	response.WithJSON(w, http.StatusOK, instance)
}

// UpdateTourInstance updates an existing tour instance by its ID.
// @Summary Update a tour instance by ID
// @Description Update schedule, capacity ceiling, status or price override. The booked counter itself is never writable here.
// @Tags TourInstance
// @Accept json
// @Produce json
// @Param id path string true "Tour Instance ID"
// @Param request body dto.UpdateTourInstanceRequest true "Update Tour Instance Request"
// @Success 200 {object} response.Message "Tour instance updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tourinstances/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTourInstance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTourInstance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTourInstanceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tour instance")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour instance updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Tour instance updated successfully")
}

// DeleteTourInstance deletes a tour instance by its ID.
// @Summary Delete a tour instance by ID
// @Description Delete a tour instance that has no active bookings.
// @Tags TourInstance
// @Accept json
// @Produce json
// @Param id path string true "Tour Instance ID"
// @Success 200 {object} response.Message "Tour instance deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tourinstances/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTourInstance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTourInstance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tour instance")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour instance deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Tour instance deleted successfully")
}
