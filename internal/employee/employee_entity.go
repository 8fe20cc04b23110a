package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultProfilePicture is the sentinel meaning "no custom image
// uploaded". Code paths must branch on exact string equality to it.
const DefaultProfilePicture = "default-profile.jpg"

// Employee type enumeration.
const (
	TypeFullTime = "Full-time"
	TypePartTime = "Part-time"
	TypeContract = "Contract"
	TypeIntern   = "Intern"
)

var employeeTypes = map[string]bool{
	TypeFullTime: true,
	TypePartTime: true,
	TypeContract: true,
	TypeIntern:   true,
}

// ValidEmployeeType reports whether s is one of the four enumerated values.
func ValidEmployeeType(s string) bool {
	return employeeTypes[s]
}

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// DefaultAddress returns the schema defaults applied when a create
// request omits address fields.
func DefaultAddress() Address {
	return Address{Country: "India"}
}

type Education struct {
	Degree      string `bson:"degree" json:"degree"`
	Institution string `bson:"institution" json:"institution"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
}

type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Employee struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Email          string             `bson:"email" json:"email"` // stored trimmed + lowercase, unique
	Phone          string             `bson:"phone" json:"phone"`
	EmployeeType   string             `bson:"employeeType" json:"employeeType"`
	Department     string             `bson:"department" json:"department"`
	Position       string             `bson:"position" json:"position"`
	JoinDate       time.Time          `bson:"joinDate" json:"joinDate"`
	Salary         float64            `bson:"salary" json:"salary"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`

	// Provider id persisted next to the URL so deletion does not have to
	// re-derive it from URL shape. Empty on legacy records.
	ProfilePictureID string `bson:"profilePictureId,omitempty" json:"-"`

	Address          Address            `bson:"address" json:"address"`
	Skills           []string           `bson:"skills" json:"skills"`
	Education        []Education        `bson:"education" json:"education"`
	EmergencyContact EmergencyContact   `bson:"emergencyContact" json:"emergencyContact"`
	CreatedBy        primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmployeeIndexes declares the storage-level invariants: email
// uniqueness (the backstop for concurrent creates) and the newest-first
// listing order.
var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_createdAt_desc"),
	},
}
