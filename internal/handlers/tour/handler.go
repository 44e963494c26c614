package tour

import (
	"net/http"

	"peakpath/infras/otel"
	"peakpath/internal/domains/tour/model"
	"peakpath/internal/domains/tour/model/dto"
	"peakpath/internal/domains/tour/service"
	"peakpath/shared"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/validator"
	"peakpath/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tour
	otel    otel.Otel
}

func New(service service.Tour, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tours", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTour)
		routerGroup.Get("/", handler.GetTours)
		routerGroup.Get("/{id}", handler.GetTourByID)
		routerGroup.Patch("/{id}", handler.UpdateTour)
		routerGroup.Delete("/{id}", handler.DeleteTour)
	})
}

// CreateTour handles the creation of a new tour listing.
// @Summary Create a new tour
// @Description Create a new tour listing with the provided details.
// @Tags Tour
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Tour title"
// @Param description formData string false "Tour description"
// @Param location formData string true "Tour location"
// @Param difficulty formData string true "Tour difficulty (easy, moderate, hard)"
// @Param duration_hours formData integer true "Tour duration in hours"
// @Param base_price formData integer true "Base price per participant in minor units"
// @Param active formData boolean false "Tour active status"
// @Param image formData file false "Cover image"
// @Success 201 {object} response.Message "Tour created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours [post]
// @Security BearerAuth
func (handler *Handler) CreateTour(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTour")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateTourRequest{
		Title:       request.FormValue("title"),
		Description: request.FormValue("description"),
		Location:    request.FormValue("location"),
		Difficulty:  request.FormValue("difficulty"),
	}

	if durationStr := request.FormValue("duration_hours"); durationStr != "" {
		if d, err := shared.ConvertStringToInt(durationStr); err == nil {
			req.DurationHours = d
		}
	}

	if priceStr := request.FormValue("base_price"); priceStr != "" {
		if p, err := shared.ConvertStringToInt64(priceStr); err == nil {
			req.BasePrice = p
		}
	}

	if activeStr := request.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tour")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Tour created successfully")
}

// GetTours retrieves all tours based on query parameters.
// @Summary Get all tours
// @Description Retrieve all tours with optional filtering and pagination.
// @Tags Tour
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param location query string false "Filter by location"
// @Param difficulty query string false "Filter by difficulty"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetToursResponse] "List of tours"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours [get]
func (handler *Handler) GetTours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTours")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	title := r.URL.Query().Get(model.FieldTitle)
	location := r.URL.Query().Get(model.FieldLocation)
	difficulty := r.URL.Query().Get(model.FieldDifficulty)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTitle,
				Operator: gDto.FilterOperatorLike,
				Value:    title,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLocation,
				Operator: gDto.FilterOperatorLike,
				Value:    location,
				Table:    model.TableName,
			},
		},
	}

	if difficulty != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDifficulty,
			Operator: gDto.FilterOperatorEq,
			Value:    difficulty,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	tours, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tours retrieved successfully")

	response.WithJSON(w, http.StatusOK, tours)
}

// GetTourByID retrieves a tour by its ID.
// @Summary Get a tour by ID
// @Description Retrieve a tour by its unique identifier.
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Data[dto.TourResponse] "Tour details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{id} [get]
func (handler *Handler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tour, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tour by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour retrieved successfully")

	response.WithJSON(w, http.StatusOK, tour)
}

// UpdateTour updates an existing tour by its ID.
// @Summary Update a tour by ID
// @Description Update the details of an existing tour.
// @Tags Tour
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Tour ID"
// @Param title formData string false "Tour title"
// @Param description formData string false "Tour description"
// @Param location formData string false "Tour location"
// @Param difficulty formData string false "Tour difficulty (easy, moderate, hard)"
// @Param duration_hours formData integer false "Tour duration in hours"
// @Param base_price formData integer false "Base price per participant in minor units"
// @Param active formData boolean false "Tour active status"
// @Param image formData file false "Cover image"
// @Success 200 {object} response.Message "Tour updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTour")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateTourRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Difficulty:  r.FormValue("difficulty"),
	}

	if durationStr := r.FormValue("duration_hours"); durationStr != "" {
		if d, err := shared.ConvertStringToInt(durationStr); err == nil {
			req.DurationHours = &d
		}
	}

	if priceStr := r.FormValue("base_price"); priceStr != "" {
		if p, err := shared.ConvertStringToInt64(priceStr); err == nil {
			req.BasePrice = &p
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tour")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Tour updated successfully")
}

// DeleteTour deletes a tour by its ID.
// @Summary Delete a tour by ID
// @Description Delete a tour using its unique identifier.
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Message "Tour deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tours/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTour")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tour")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Tour deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Tour deleted successfully")
}
