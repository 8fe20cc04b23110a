package employee

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/media"
	"go-ems/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// EmployeeList is the paginated listing contract:
// {employees, page, pages, total}.
type EmployeeList struct {
	Employees []Employee `json:"employees"`
	Page      int        `json:"page"`
	Pages     int        `json:"pages"`
	Total     int64      `json:"total"`
}

// --- transport-flexible field types ---
//
// Multipart transports every value as text, so nested documents arrive
// as JSON-encoded strings, while application/json bodies carry native
// structures. Each field below is a small tagged union, resolved into
// the canonical input exactly once, before any business logic runs.

// docField carries a nested document in whichever shape the transport
// delivered it.
type docField struct {
	present bool
	text    string          // JSON text from a multipart form value
	raw     json.RawMessage // already-structured value from a JSON body
}

func (f *docField) UnmarshalJSON(b []byte) error {
	f.present = true
	f.raw = append(f.raw[:0], b...)
	return nil
}

func (f *docField) SetText(s string) {
	f.present = true
	f.text = s
}

func (f *docField) Present() bool {
	return f.present && (f.text != "" || len(f.raw) > 0)
}

func (f *docField) Decode(v any) error {
	if !f.Present() {
		return nil
	}
	data := f.raw
	if f.text != "" {
		data = []byte(f.text)
	}
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, v)
}

// skillsField accepts a comma-separated string or a string array.
type skillsField struct {
	present bool
	text    string
	isText  bool
	raw     json.RawMessage
}

func (f *skillsField) UnmarshalJSON(b []byte) error {
	f.present = true
	if len(b) > 0 && b[0] == '"' {
		f.isText = true
		return json.Unmarshal(b, &f.text)
	}
	f.raw = append(f.raw[:0], b...)
	return nil
}

func (f *skillsField) SetText(s string) {
	f.present = true
	f.isText = true
	f.text = s
}

// Values normalizes both shapes to a trimmed sequence with empty
// entries dropped; normalization is idempotent.
func (f *skillsField) Values() ([]string, error) {
	if !f.present {
		return nil, nil
	}

	if f.isText {
		return normalizeSkills(strings.Split(f.text, ",")), nil
	}

	if string(f.raw) == "null" {
		return []string{}, nil
	}

	var parts []string
	if err := json.Unmarshal(f.raw, &parts); err != nil {
		return nil, err
	}
	return normalizeSkills(parts), nil
}

func normalizeSkills(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// flexFloat tolerates numbers arriving as JSON numbers or as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexInt tolerates numbers arriving as JSON numbers or as strings,
// including the empty string ("" keeps the zero value).
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

type educationInput struct {
	Degree      string  `json:"degree"`
	Institution string  `json:"institution"`
	Year        flexInt `json:"year"`
}

// filterEducation drops entries where both degree and institution are
// blank; an entry with either one populated is kept.
func filterEducation(entries []educationInput) []Education {
	out := make([]Education, 0, len(entries))
	for _, e := range entries {
		degree := strings.TrimSpace(e.Degree)
		institution := strings.TrimSpace(e.Institution)
		if degree == "" && institution == "" {
			continue
		}
		out = append(out, Education{
			Degree:      degree,
			Institution: institution,
			Year:        int(e.Year),
		})
	}
	return out
}

// AddressPatch distinguishes "field absent" (nil) from "field present
// but empty", so updates can merge key-by-key.
type AddressPatch struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Country *string `json:"country"`
}

func (p AddressPatch) applyTo(a *Address) {
	if p.Street != nil {
		a.Street = *p.Street
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.State != nil {
		a.State = *p.State
	}
	if p.ZipCode != nil {
		a.ZipCode = *p.ZipCode
	}
	if p.Country != nil {
		a.Country = *p.Country
	}
}

// employeeForm is the raw request shape shared by create and update.
type employeeForm struct {
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	EmployeeType     string      `json:"employeeType"`
	Department       string      `json:"department"`
	Position         string      `json:"position"`
	JoinDate         string      `json:"joinDate"`
	Salary           flexFloat   `json:"salary"`
	Address          docField    `json:"address"`
	Skills           skillsField `json:"skills"`
	Education        docField    `json:"education"`
	EmergencyContact docField    `json:"emergencyContact"`
}

// bindEmployeeForm reads the request body from either transport into
// the shared raw form.
func bindEmployeeForm(c *gin.Context) (employeeForm, error) {
	var f employeeForm

	ct := c.ContentType()
	if ct == "multipart/form-data" || ct == "application/x-www-form-urlencoded" {
		f.FirstName = c.PostForm("firstName")
		f.LastName = c.PostForm("lastName")
		f.Email = c.PostForm("email")
		f.Phone = c.PostForm("phone")
		f.EmployeeType = c.PostForm("employeeType")
		f.Department = c.PostForm("department")
		f.Position = c.PostForm("position")
		f.JoinDate = c.PostForm("joinDate")

		if v := c.PostForm("salary"); v != "" {
			salary, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return f, apperror.New(apperror.CodeInvalidInput, "Salary must be a number", http.StatusBadRequest)
			}
			f.Salary = flexFloat(salary)
		}

		if v, ok := c.GetPostForm("address"); ok {
			f.Address.SetText(v)
		}
		if v, ok := c.GetPostForm("skills"); ok {
			f.Skills.SetText(v)
		}
		if v, ok := c.GetPostForm("education"); ok {
			f.Education.SetText(v)
		}
		if v, ok := c.GetPostForm("emergencyContact"); ok {
			f.EmergencyContact.SetText(v)
		}

		return f, nil
	}

	if err := c.ShouldBindJSON(&f); err != nil {
		return f, apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid JSON in request body", http.StatusBadRequest)
	}
	return f, nil
}

// CreateEmployeeInput is the canonical create payload after edge
// normalization.
type CreateEmployeeInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	EmployeeType     string
	Department       string
	Position         string
	JoinDate         time.Time // zero means "default to now"
	Salary           float64
	Address          Address
	Skills           []string
	Education        []Education
	EmergencyContact EmergencyContact
	Picture          *media.File
}

// UpdateEmployeeInput is the canonical partial-update payload. Empty
// scalars keep the stored value (the web form submits every field, so
// "" means "unchanged"); nil pointers mean the field was absent.
type UpdateEmployeeInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	EmployeeType     string
	Department       string
	Position         string
	JoinDate         *time.Time
	Salary           float64 // zero keeps the stored value
	Address          *AddressPatch
	Skills           *[]string // empty slice clears, nil keeps
	Education        *[]Education
	EmergencyContact *EmergencyContact
	Picture          *media.File
}

func parseError(err error) error {
	return apperror.Wrap(err,
		apperror.CodeInvalidInput,
		fmt.Sprintf("Invalid data format: %v", err),
		http.StatusBadRequest,
	)
}

func (f employeeForm) toCreateInput() (CreateEmployeeInput, error) {
	in := CreateEmployeeInput{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        f.Email,
		Phone:        f.Phone,
		EmployeeType: f.EmployeeType,
		Department:   f.Department,
		Position:     f.Position,
		Salary:       float64(f.Salary),
		Address:      DefaultAddress(),
	}

	if f.JoinDate != "" {
		t, err := parseJoinDate(f.JoinDate)
		if err != nil {
			return in, err
		}
		in.JoinDate = t
	}

	// Absent fields keep the schema defaults set above.
	if err := f.Address.Decode(&in.Address); err != nil {
		return in, parseError(err)
	}

	skills, err := f.Skills.Values()
	if err != nil {
		return in, parseError(err)
	}
	if skills == nil {
		skills = []string{}
	}
	in.Skills = skills

	var education []educationInput
	if err := f.Education.Decode(&education); err != nil {
		return in, parseError(err)
	}
	in.Education = filterEducation(education)

	if err := f.EmergencyContact.Decode(&in.EmergencyContact); err != nil {
		return in, parseError(err)
	}

	return in, nil
}

func (f employeeForm) toUpdateInput() (UpdateEmployeeInput, error) {
	in := UpdateEmployeeInput{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        f.Email,
		Phone:        f.Phone,
		EmployeeType: f.EmployeeType,
		Department:   f.Department,
		Position:     f.Position,
		Salary:       float64(f.Salary),
	}

	if f.JoinDate != "" {
		t, err := parseJoinDate(f.JoinDate)
		if err != nil {
			return in, err
		}
		in.JoinDate = &t
	}

	if f.Address.Present() {
		var patch AddressPatch
		if err := f.Address.Decode(&patch); err != nil {
			return in, parseError(err)
		}
		in.Address = &patch
	}

	// A present skills field always replaces, so submitting "" clears
	// the stored skills. Deliberate: it mirrors the form's behavior.
	if f.Skills.present {
		skills, err := f.Skills.Values()
		if err != nil {
			return in, parseError(err)
		}
		if skills == nil {
			skills = []string{}
		}
		in.Skills = &skills
	}

	if f.Education.Present() {
		var education []educationInput
		if err := f.Education.Decode(&education); err != nil {
			return in, parseError(err)
		}
		filtered := filterEducation(education)
		in.Education = &filtered
	}

	if f.EmergencyContact.Present() {
		var contact EmergencyContact
		if err := f.EmergencyContact.Decode(&contact); err != nil {
			return in, parseError(err)
		}
		in.EmergencyContact = &contact
	}

	return in, nil
}

func parseJoinDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, employeeerrors.ErrInvalidJoinDate
}
