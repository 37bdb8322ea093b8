package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/kiesman99/mosaic/internal/api"
	"github.com/kiesman99/mosaic/internal/composer"
	"github.com/kiesman99/mosaic/internal/mosaic"
	"github.com/kiesman99/mosaic/internal/storage"
)

// maxUploadMemory is the part of a multipart form kept in memory
const maxUploadMemory = 32 << 20

// Server implements the ServerInterface from the generated API
type Server struct {
	service   *composer.Service
	startTime time.Time
	version   string
	publicURL string
}

// NewServer creates a new server instance. publicURL prefixes download
// links; when empty the scheme and host of each request are used.
func NewServer(service *composer.Service, version, publicURL string) *Server {
	return &Server{
		service:   service,
		startTime: time.Now(),
		version:   version,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := api.HealthResponse{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// UploadFile stores the multipart field "file"
func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeValidationErrorResponse(w, "file", "request must be multipart/form-data: "+err.Error(), &requestID)
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		s.writeValidationErrorResponse(w, "file", "multipart field 'file' is required", &requestID)
		return
	}

	resp, err := s.storeUpload(headers[0], s.linker(r))
	if err != nil {
		s.handleServiceError(w, err, &requestID)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// UploadMultipleFiles stores every "files" part and answers with one entry
// per part in request order
func (s *Server) UploadMultipleFiles(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeValidationErrorResponse(w, "files", "request must be multipart/form-data: "+err.Error(), &requestID)
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		s.writeValidationErrorResponse(w, "files", "multipart field 'files' is required", &requestID)
		return
	}

	link := s.linker(r)
	responses := make([]api.UploadFileResponse, 0, len(headers))
	for _, fh := range headers {
		resp, err := s.storeUpload(fh, link)
		if err != nil {
			s.handleServiceError(w, err, &requestID)
			return
		}
		responses = append(responses, *resp)
	}
	s.writeJSON(w, http.StatusOK, responses)
}

func (s *Server) storeUpload(fh *multipart.FileHeader, link composer.LinkFunc) (*api.UploadFileResponse, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	stored, err := s.service.Upload(fh.Filename, f, link)
	if err != nil {
		return nil, err
	}
	return &api.UploadFileResponse{
		FileName:        stored.Name,
		FileDownloadUri: stored.DownloadURI,
		FileType:        stored.ContentType,
		Size:            stored.Size,
	}, nil
}

// DownloadFile streams a stored file as an attachment
func (s *Server) DownloadFile(w http.ResponseWriter, r *http.Request, fileName string) {
	requestID := requestIDFrom(r)

	data, contentType, err := s.service.Download(fileName)
	if err != nil {
		s.handleServiceError(w, err, &requestID)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.WithError(err).WithField("file", fileName).Warn("Error writing download")
	}
}

// ListFiles returns every stored file ordered by id
func (s *Server) ListFiles(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	rows, err := s.service.List(s.linker(r))
	if err != nil {
		s.handleServiceError(w, err, &requestID)
		return
	}

	files := make([]api.ImageFile, len(rows))
	for i, row := range rows {
		files[i] = api.ImageFile{
			Id:          row.ID,
			Name:        row.Name,
			DownloadUri: row.DownloadURI,
		}
	}
	s.writeJSON(w, http.StatusOK, files)
}

// DeleteFile removes a stored file
func (s *Server) DeleteFile(w http.ResponseWriter, r *http.Request, fileName string) {
	requestID := requestIDFrom(r)

	if err := s.service.Delete(fileName); err != nil {
		s.handleServiceError(w, err, &requestID)
		return
	}
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
}

// ComposeImage rebuilds base out of the tiles of mapper and stores the
// result under resultName
func (s *Server) ComposeImage(w http.ResponseWriter, r *http.Request, params api.ComposeImageParams) {
	requestID := requestIDFrom(r)

	req := composer.ComposeRequest{
		Base:       params.Base,
		Mapper:     params.Mapper,
		ResultName: params.ResultName,
	}
	if params.FragWidth != nil {
		if *params.FragWidth < 1 {
			s.writeValidationErrorResponse(w, "fragWidth", "fragWidth must be positive", &requestID)
			return
		}
		req.FragWidth = *params.FragWidth
	}
	if params.FragHeight != nil {
		if *params.FragHeight < 1 {
			s.writeValidationErrorResponse(w, "fragHeight", "fragHeight must be positive", &requestID)
			return
		}
		req.FragHeight = *params.FragHeight
	}

	res, err := s.service.Compose(r.Context(), req, s.linker(r))
	if err != nil {
		s.handleServiceError(w, err, &requestID)
		return
	}

	tiles := res.Stats.Filled
	w.Header().Set("X-Request-ID", requestID)
	s.writeJSON(w, http.StatusOK, api.ComposeResponse{
		FileName:        &res.Name,
		FileDownloadUri: &res.DownloadURI,
		FileType:        &res.ContentType,
		Size:            &res.Size,
		Width:           &res.Width,
		Height:          &res.Height,
		TilesPlaced:     &tiles,
	})
}

// HandleBindError reports malformed path or query parameters in the
// validation error shape
func (s *Server) HandleBindError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestIDFrom(r)

	field := "request"
	var required *api.RequiredParamError
	var invalid *api.InvalidParamFormatError
	switch {
	case errors.As(err, &required):
		field = required.ParamName
	case errors.As(err, &invalid):
		field = invalid.ParamName
	}
	s.writeValidationErrorResponse(w, field, err.Error(), &requestID)
}

// linker returns the download link builder for r
func (s *Server) linker(r *http.Request) composer.LinkFunc {
	base := s.publicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
			scheme = fwd
		}
		base = scheme + "://" + r.Host
	}
	return func(name string) string {
		return base + "/api/v1/downloadFile/" + url.PathEscape(name)
	}
}

// handleServiceError maps errors from the composer service to responses
func (s *Server) handleServiceError(w http.ResponseWriter, err error, requestID *string) {
	var decodeErr *composer.DecodeError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.writeErrorResponse(w, http.StatusNotFound, "FILE_NOT_FOUND",
			err.Error(), requestID, nil)
	case errors.As(err, &decodeErr):
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_IMAGE",
			err.Error(), requestID, map[string]interface{}{
				"file": decodeErr.Name,
			})
	case errors.Is(err, storage.ErrInvalidName):
		s.writeValidationErrorResponse(w, "fileName", err.Error(), requestID)
	case errors.Is(err, mosaic.ErrFragmentSize), errors.Is(err, mosaic.ErrEmptyRaster):
		s.writeValidationErrorResponse(w, "fragment", err.Error(), requestID)
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "TIMEOUT",
			"Request timed out", requestID, nil)
	case errors.Is(err, context.Canceled):
		log.WithField("request_id", *requestID).Info("Request canceled by client")
		s.writeErrorResponse(w, http.StatusRequestTimeout, "REQUEST_CANCELED",
			"Request canceled", requestID, nil)
	default:
		log.WithError(err).WithField("request_id", *requestID).Error("Request failed")
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Internal server error", requestID, nil)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Error encoding response")
	}
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string, details map[string]interface{}) {
	response := api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}

	s.writeJSON(w, statusCode, response)
}

// writeValidationErrorResponse writes a validation error response
func (s *Server) writeValidationErrorResponse(w http.ResponseWriter, field, message string, requestID *string) {
	response := api.ValidationErrorResponse{
		Error:     api.VALIDATIONERROR,
		Message:   message,
		RequestId: requestID,
		ValidationErrors: []struct {
			Code    *string `json:"code,omitempty"`
			Field   string  `json:"field"`
			Message string  `json:"message"`
		}{
			{
				Field:   field,
				Message: message,
			},
		},
	}

	s.writeJSON(w, http.StatusBadRequest, response)
}

// requestIDFrom reuses the id set by the RequestID middleware or makes one
func requestIDFrom(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}
