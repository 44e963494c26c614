package photo

import (
	"net/http"
	"peakpath/infras/otel"
	"peakpath/infras/s3"
	"peakpath/internal/domains/photo/model"
	"peakpath/internal/domains/photo/model/dto"
	"peakpath/internal/domains/photo/service"
	"peakpath/shared/constant"
	gDto "peakpath/shared/dto"
	"peakpath/shared/validator"
	"peakpath/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Album
	s3      s3.S3
	otel    otel.Otel
}

func New(service service.Album, s3 s3.S3, otel otel.Otel) Handler {
	return Handler{
		service: service,
		s3:      s3,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/albums", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAlbum)
		routerGroup.Get("/", handler.GetAlbums)
		routerGroup.Get("/{id}", handler.GetAlbumByID)
		routerGroup.Patch("/{id}", handler.UpdateAlbum)
		routerGroup.Delete("/{id}", handler.DeleteAlbum)
		routerGroup.Post("/upload", handler.UploadImage)
		routerGroup.Delete("/images", handler.DeleteImages)
	})
}

// CreateAlbum handles the creation of a new album.
// @Summary Create a new album
// @Description Create a new album with the provided details.
// @Tags Album
// @Accept json
// @Produce json
// @Param request body dto.CreateAlbumRequest true "Create Album Request"
// @Success 201 {object} response.Message "Album created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums [post]
// @Security BearerAuth
func (handler *Handler) CreateAlbum(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAlbum")
	defer scope.End()

	req := dto.CreateAlbumRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create album")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Album created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Album created successfully")
}

// GetAlbums retrieves all albums based on query parameters.
// @Summary Get all albums
// @Description Retrieve all albums with optional filtering and pagination.
// @Tags Album
// @Accept json
// @Produce json
// @Param tour_id query string false "Filter by tour ID"
// @Param title query string false "Filter by title"
// @Param description query string false "Filter by description"
// @Success 200 {object} dto.GetAlbumsResponse "List of albums"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums [get]
func (handler *Handler) GetAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlbums")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tourID := r.URL.Query().Get(model.FieldTourID)
	title := r.URL.Query().Get(model.FieldTitle)
	description := r.URL.Query().Get(model.FieldDescription)

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

	if title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	if description != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDescription,
			Operator: gDto.FilterOperatorLike,
			Value:    description,
			Table:    model.TableName,
		})
	}

	albums, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get albums")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Albums retrieved successfully")

	response.WithJSON(w, http.StatusOK, albums)
}

// GetAlbumByID retrieves a album by its ID.
// @Summary Get a album by ID
// @Description Retrieve a album by its unique identifier.
// @Tags Album
// @Accept json
// @Produce json
// @Param id path string true "Album ID"
// @Success 200 {object} dto.AlbumResponse "Album details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums/{id} [get]
func (handler *Handler) GetAlbumByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlbumByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	album, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get album by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Album retrieved successfully")

	response.WithJSON(w, http.StatusOK, album)
}

// UpdateAlbum updates an existing album by its ID.
// @Summary Update a album by ID
// @Description Update the details of an existing album.
// @Tags Album
// @Accept json
// @Produce json
// @Param id path string true "Album ID"
// @Param request body dto.UpdateAlbumRequest true "Update Album Request"
// @Success 200 {object} response.Message "Album updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAlbum")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAlbumRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update album")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Album updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Album updated successfully")
}

// DeleteAlbum deletes a album by its ID.
// @Summary Delete a album by ID
// @Description Delete a album using its unique identifier.
// @Tags Album
// @Accept json
// @Produce json
// @Param id path string true "Album ID"
// @Success 200 {object} response.Message "Album deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAlbum")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete album")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Album deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Album deleted successfully")
}

// UploadImage handles image upload to S3.
// @Summary Upload an image to S3
// @Description Upload an image file to S3 and return the URL.
// @Tags Album
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} dto.UploadImageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteImages handles deletion of multiple images from S3.
// @Summary Delete images from S3
// @Description Delete multiple images from S3 by providing their URLs.
// @Tags Album
// @Accept json
// @Produce json
// @Param request body dto.DeleteImagesRequest true "Delete Images Request"
// @Success 200 {object} response.Message "Images deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/albums/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImages")
	defer scope.End()

	req := dto.DeleteImagesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteImagesFromS3(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete images from S3")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Images deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Images deleted successfully")
}
