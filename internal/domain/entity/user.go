package entity

// Module módulo del portal habilitado para el usuario.
type Module struct {
	ID          int64  `json:"id_modulo"`
	Description string `json:"descripcion"`
	Code        string `json:"codigo"`
}

// Profile perfil (rol) asignado al usuario.
type Profile struct {
	ID          int64  `json:"id_perfil"`
	Description string `json:"descripcion"`
	Status      string `json:"estatus"`
	Code        string `json:"codigo"`
}

// AuthenticatedUser usuario devuelto por /auth/signin. Incluye el token de acceso.
type AuthenticatedUser struct {
	ID            int64     `json:"id" validate:"required"`
	Username      string    `json:"username" validate:"required"`
	Permissions   []string  `json:"permisos"`
	Name          string    `json:"nombre"`
	ProfileImage  *string   `json:"imagen_perfil"`
	Email         string    `json:"email_address" validate:"required,email"`
	Modules       []Module  `json:"modulos" validate:"dive"`
	Profiles      []Profile `json:"perfiles" validate:"dive"`
	IsProvider    *bool     `json:"proveedor"`
	ResetPassword bool      `json:"resetPassword"`
	Status        string    `json:"estatus"`
	AccessToken   string    `json:"accessToken" validate:"required"`
	TokenType     string    `json:"tokenType"`
}

// HasPermission indica si el usuario tiene el permiso indicado.
func (u AuthenticatedUser) HasPermission(p string) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// Public copia del usuario sin el token de acceso, apta para exponer.
func (u AuthenticatedUser) Public() AuthenticatedUser {
	u.AccessToken = ""
	return u
}

// Credentials credenciales de inicio de sesión.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
