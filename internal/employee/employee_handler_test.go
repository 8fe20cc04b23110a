package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeService struct {
	listFn   func(ctx context.Context, page int, keyword string) (*employee.EmployeeList, error)
	getFn    func(ctx context.Context, id string) (*employee.Employee, error)
	createFn func(ctx context.Context, creatorID string, in employee.CreateEmployeeInput) (*employee.Employee, error)
	updateFn func(ctx context.Context, id string, in employee.UpdateEmployeeInput) (*employee.Employee, error)
	deleteFn func(ctx context.Context, id string) error
	searchFn func(ctx context.Context, query string) ([]employee.Employee, error)
}

func (f *fakeService) List(ctx context.Context, page int, keyword string) (*employee.EmployeeList, error) {
	return f.listFn(ctx, page, keyword)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.getFn(ctx, id)
}
func (f *fakeService) Create(ctx context.Context, creatorID string, in employee.CreateEmployeeInput) (*employee.Employee, error) {
	return f.createFn(ctx, creatorID, in)
}
func (f *fakeService) Update(ctx context.Context, id string, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
	return f.updateFn(ctx, id, in)
}
func (f *fakeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeService) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	return f.searchFn(ctx, query)
}

func TestHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		listFn: func(ctx context.Context, page int, keyword string) (*employee.EmployeeList, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, "ann", keyword)
			return &employee.EmployeeList{
				Employees: []employee.Employee{{FirstName: "Ann"}},
				Page:      2,
				Pages:     3,
				Total:     25,
			}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees?pageNumber=2&keyword=ann", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employees"`)
	assert.Contains(t, w.Body.String(), `"pages":3`)
	assert.Contains(t, w.Body.String(), `"total":25`)
}

func TestHandler_CreateJSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, creatorID string, in employee.CreateEmployeeInput) (*employee.Employee, error) {
			assert.Equal(t, "user-1", creatorID)
			assert.Equal(t, "ann@x.com", in.Email)
			assert.Equal(t, []string{"go", "mongodb"}, in.Skills)
			assert.Equal(t, "1 Main Rd", in.Address.Street)
			assert.Nil(t, in.Picture)
			return &employee.Employee{ID: primitive.NewObjectID(), FirstName: in.FirstName}, nil
		},
	}
	h := employee.NewHandler(svc)

	body := `{
		"firstName": "Ann",
		"lastName": "Lee",
		"email": "ann@x.com",
		"salary": "90000",
		"skills": ["go", "mongodb"],
		"address": {"street": "1 Main Rd", "city": "Pune", "state": "MH", "zipCode": "411001"}
	}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "user-1")
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CreateMultipartWithFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, creatorID string, in employee.CreateEmployeeInput) (*employee.Employee, error) {
			assert.Equal(t, []string{"go", "react"}, in.Skills)
			assert.Equal(t, "Pune", in.Address.City)
			if assert.NotNil(t, in.Picture) {
				assert.Equal(t, "ann.png", in.Picture.Name)
			}
			return &employee.Employee{ID: primitive.NewObjectID()}, nil
		},
	}
	h := employee.NewHandler(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("firstName", "Ann")
	_ = mw.WriteField("lastName", "Lee")
	_ = mw.WriteField("email", "ann@x.com")
	_ = mw.WriteField("salary", "90000")
	_ = mw.WriteField("skills", "go, react")
	_ = mw.WriteField("address", `{"street":"1 Main Rd","city":"Pune","state":"MH","zipCode":"411001"}`)
	fw, _ := mw.CreateFormFile("profilePicture", "ann.png")
	_, _ = fw.Write([]byte("png-bytes"))
	_ = mw.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "user-1")
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CreateValidationErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, creatorID string, in employee.CreateEmployeeInput) (*employee.Employee, error) {
			return nil, employeeerrors.ErrEmployeeAlreadyExists
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "message")
	assert.Contains(t, body, "stack")
	assert.Contains(t, body, "details")
	assert.Contains(t, w.Body.String(), "Employee with this email already exists")
}

func TestHandler_UpdatePartialJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := primitive.NewObjectID().Hex()

	svc := &fakeService{
		updateFn: func(ctx context.Context, gotID string, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, "Platform", in.Department)
			assert.Nil(t, in.Skills) // absent field stays nil
			if assert.NotNil(t, in.Address) {
				assert.Equal(t, "Mumbai", *in.Address.City)
				assert.Nil(t, in.Address.Street)
			}
			return &employee.Employee{}, nil
		},
	}
	h := employee.NewHandler(svc)

	body := `{"department": "Platform", "address": {"city": "Mumbai"}}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodPut, "/employees/"+id, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := primitive.NewObjectID().Hex()

	svc := &fakeService{
		deleteFn: func(ctx context.Context, gotID string) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil)
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Employee removed")
}

func TestHandler_SearchMissingQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		searchFn: func(ctx context.Context, query string) ([]employee.Employee, error) {
			return nil, employeeerrors.ErrSearchQueryRequired
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/search", nil)
	h.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Search query is required")
}

func TestHandler_MalformedJSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := employee.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"firstName":`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON in request body")
}
