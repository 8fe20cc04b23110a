package employee

import (
	"net/http"
	"strconv"

	"go-ems/internal/media"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Message, httpErr.Details)
}

// formFile stages the optional multipart image. A missing file is not
// an error; the closer is non-nil only when a file was opened.
func formFile(c *gin.Context) (*media.File, func()) {
	fh, err := c.FormFile("profilePicture")
	if err != nil {
		return nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, nil
	}

	return &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      src,
	}, func() { _ = src.Close() }
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	keyword := c.Query("keyword")
	h.logger.Debug("http list employees",
		zap.Int("page", page),
		zap.String("keyword", keyword),
	)

	resp, err := h.service.List(ctx, page, keyword)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", id))

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	creatorID := c.GetString("user_id")
	h.logger.Debug("http create employee", zap.String("user_id", creatorID))

	form, err := bindEmployeeForm(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	in, err := form.toCreateInput()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if file, closeFile := formFile(c); file != nil {
		defer closeFile()
		in.Picture = file
	}

	resp, err := h.service.Create(ctx, creatorID, in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http update employee", zap.String("employee_id", id))

	form, err := bindEmployeeForm(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	in, err := form.toUpdateInput()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if file, closeFile := formFile(c); file != nil {
		defer closeFile()
		in.Picture = file
	}

	resp, err := h.service.Update(ctx, id, in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http delete employee", zap.String("employee_id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Employee removed")
}

func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("query")
	h.logger.Debug("http search employees", zap.String("query", query))

	resp, err := h.service.Search(ctx, query)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
