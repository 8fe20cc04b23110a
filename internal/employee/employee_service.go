package employee

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/media"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PageSize is fixed for the paginated listing.
const PageSize = 10

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, page int, keyword string) (*EmployeeList, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, creatorID string, in CreateEmployeeInput) (*Employee, error)
	Update(ctx context.Context, id string, in UpdateEmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]Employee, error)
}

type service struct {
	repo     Repository
	uploader media.Uploader
	logger   *zap.Logger
}

func NewService(repo Repository, uploader media.Uploader, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, uploader: uploader, logger: l}
}

func (s *service) List(ctx context.Context, page int, keyword string) (*EmployeeList, error) {
	if page < 1 {
		page = 1
	}

	employees, total, err := s.repo.FindPage(ctx, keyword, page, PageSize)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return &EmployeeList{
		Employees: employees,
		Page:      page,
		Pages:     response.PageCount(total, PageSize),
		Total:     total,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an unparseable id can never resolve to a record
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	emp, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return emp, nil
}

func (s *service) Create(ctx context.Context, creatorID string, in CreateEmployeeInput) (*Employee, error) {
	rid := contextutil.GetRequestID(ctx)

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if details := validateCreate(in); len(details) > 0 {
		s.logger.Warn("create employee validation failed",
			zap.String("request_id", rid),
			zap.Strings("details", details),
		)
		return nil, apperror.Validation(details)
	}

	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	// Pre-check for a friendly Conflict; the unique index backstops the
	// race between concurrent creates.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, employeeerrors.ErrEmployeeAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Error("create employee email lookup failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	employeeType := in.EmployeeType
	if employeeType == "" {
		employeeType = TypeFullTime
	}
	if !ValidEmployeeType(employeeType) {
		return nil, employeeerrors.ErrInvalidEmployeeType
	}

	profilePicture := DefaultProfilePicture
	profilePictureID := ""
	if in.Picture != nil {
		if err := media.ValidateFile(*in.Picture); err != nil {
			return nil, err
		}

		// Upload failure is non-fatal: log it and keep the default image.
		res := s.uploader.Upload(ctx, *in.Picture)
		if res.Skipped {
			s.logger.Warn("profile picture upload skipped",
				zap.String("request_id", rid),
				zap.String("reason", res.Reason),
			)
		} else {
			profilePicture = res.URL
			profilePictureID = res.PublicID
		}
	}

	joinDate := in.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now().UTC()
	}

	emp := &Employee{
		ID:               primitive.NewObjectID(),
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		EmployeeType:     employeeType,
		Department:       in.Department,
		Position:         in.Position,
		JoinDate:         joinDate,
		Salary:           in.Salary,
		ProfilePicture:   profilePicture,
		ProfilePictureID: profilePictureID,
		Address:          in.Address,
		Skills:           in.Skills,
		Education:        in.Education,
		EmergencyContact: in.EmergencyContact,
		CreatedBy:        creator,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID.Hex()),
	)
	return emp, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateEmployeeInput) (*Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	emp, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if in.Picture != nil {
		if err := media.ValidateFile(*in.Picture); err != nil {
			return nil, err
		}

		// Replace the stored image: best-effort delete of the previous
		// one first, then upload. Neither failure aborts the update.
		if emp.ProfilePicture != DefaultProfilePicture {
			s.deleteImage(ctx, emp)
		}

		res := s.uploader.Upload(ctx, *in.Picture)
		if res.Skipped {
			s.logger.Warn("profile picture upload skipped on update",
				zap.String("employee_id", id),
				zap.String("reason", res.Reason),
			)
			emp.ProfilePicture = DefaultProfilePicture
			emp.ProfilePictureID = ""
		} else {
			emp.ProfilePicture = res.URL
			emp.ProfilePictureID = res.PublicID
		}
	}

	// Empty scalars keep the stored value; the form always submits the
	// full field set, so "" means "unchanged".
	if in.FirstName != "" {
		emp.FirstName = in.FirstName
	}
	if in.LastName != "" {
		emp.LastName = in.LastName
	}
	if in.Email != "" {
		emp.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Phone != "" {
		emp.Phone = in.Phone
	}
	if in.EmployeeType != "" {
		if !ValidEmployeeType(in.EmployeeType) {
			return nil, employeeerrors.ErrInvalidEmployeeType
		}
		emp.EmployeeType = in.EmployeeType
	}
	if in.Department != "" {
		emp.Department = in.Department
	}
	if in.Position != "" {
		emp.Position = in.Position
	}
	if in.JoinDate != nil {
		emp.JoinDate = *in.JoinDate
	}
	if in.Salary != 0 {
		emp.Salary = in.Salary
	}

	// Address merges key-by-key instead of wholesale replacement.
	if in.Address != nil {
		in.Address.applyTo(&emp.Address)
	}
	if in.Skills != nil {
		emp.Skills = *in.Skills
	}
	if in.Education != nil {
		emp.Education = *in.Education
	}
	if in.EmergencyContact != nil {
		emp.EmergencyContact = *in.EmergencyContact
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return emp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	emp, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return mapRepositoryError(err)
	}

	if emp.ProfilePicture != DefaultProfilePicture {
		s.deleteImage(ctx, emp)
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		s.logger.Error("delete employee failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) Search(ctx context.Context, query string) ([]Employee, error) {
	if strings.TrimSpace(query) == "" {
		return nil, employeeerrors.ErrSearchQueryRequired
	}

	employees, err := s.repo.FindMatching(ctx, query)
	if err != nil {
		s.logger.Error("search employees failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}
	return employees, nil
}

// deleteImage removes the stored provider image. Failures are logged
// and swallowed: image cleanup never decides the primary operation.
func (s *service) deleteImage(ctx context.Context, emp *Employee) {
	publicID := emp.ProfilePictureID
	if publicID == "" {
		// legacy records only carry the URL
		var ok bool
		publicID, ok = media.PublicIDFromURL(emp.ProfilePicture)
		if !ok {
			s.logger.Warn("could not derive public id from picture url",
				zap.String("employee_id", emp.ID.Hex()),
				zap.String("url", emp.ProfilePicture),
			)
			return
		}
	}

	if err := s.uploader.Delete(ctx, publicID); err != nil {
		s.logger.Warn("profile picture delete failed",
			zap.String("employee_id", emp.ID.Hex()),
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
}

func validateCreate(in CreateEmployeeInput) []string {
	var details []string

	if in.FirstName == "" {
		details = append(details, "First name is required")
	}
	if in.LastName == "" {
		details = append(details, "Last name is required")
	}
	switch {
	case in.Email == "":
		details = append(details, "Email is required")
	case !emailPattern.MatchString(in.Email):
		details = append(details, "Please add a valid email")
	}
	if in.Phone == "" {
		details = append(details, "Phone number is required")
	}
	if in.Department == "" {
		details = append(details, "Department is required")
	}
	if in.Position == "" {
		details = append(details, "Position is required")
	}
	if in.Salary <= 0 {
		details = append(details, "Salary must be greater than zero")
	}
	if in.Address.Street == "" {
		details = append(details, "Street is required")
	}
	if in.Address.City == "" {
		details = append(details, "City is required")
	}
	if in.Address.State == "" {
		details = append(details, "State is required")
	}
	if in.Address.ZipCode == "" {
		details = append(details, "Zip code is required")
	}

	return details
}
