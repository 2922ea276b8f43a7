package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleWorker     = "worker"
)

// WorkArea restricts a worker account to one administrative region.
type WorkArea struct {
	Il   string `bson:"il" json:"il"`
	Ilce string `bson:"ilce" json:"ilce"`
}

// Account is a staff login. Email is plaintext with a unique index; the
// password is an Argon2id hash. WorkArea is required iff role is worker.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	WorkArea  *WorkArea          `bson:"work_area,omitempty" json:"work_area,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
