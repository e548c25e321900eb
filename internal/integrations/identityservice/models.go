package identityservice

// Role роль пользователя в системе
type Role string

const (
	RoleTenant  Role = "tenant"
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
)

// User профиль пользователя из IdentityService
// Планировщику нужны только идентичность, роль и принадлежность к зданию
type User struct {
	ID         int64  `json:"id"`
	Role       Role   `json:"role"`
	BuildingID int64  `json:"building_id"`
	Email      string `json:"email"`
}

// IsManagerOf возвращает true, если пользователь управляет указанным зданием
func (u *User) IsManagerOf(buildingID int64) bool {
	return u.Role == RoleManager && u.BuildingID == buildingID
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
