package domain

// Role роль пользователя
type Role string

const (
	RoleProvider        Role = "provider"
	RoleCustomer        Role = "customer"
	RoleUnauthenticated Role = "unauthenticated"
)

// Profile профиль мастера или клиента, поле role должно совпадать с коллекцией
type Profile struct {
	ID   string
	Role Role
	Name string
}

// Identity определенный пользователь запроса
type Identity struct {
	UserID string
	Role   Role
}

// ProviderIdentity создает Identity мастера
func ProviderIdentity(id string) Identity {
	return Identity{UserID: id, Role: RoleProvider}
}

// CustomerIdentity создает Identity клиента
func CustomerIdentity(id string) Identity {
	return Identity{UserID: id, Role: RoleCustomer}
}

// Anonymous возвращает анонимного пользователя
func Anonymous() Identity {
	return Identity{Role: RoleUnauthenticated}
}

func (i Identity) IsProvider() bool {
	return i.Role == RoleProvider && i.UserID != ""
}

func (i Identity) IsCustomer() bool {
	return i.Role == RoleCustomer && i.UserID != ""
}

func (i Identity) IsAuthenticated() bool {
	return i.IsProvider() || i.IsCustomer()
}

// IsOwningProvider возвращает true если пользователь мастер записи a
func (i Identity) IsOwningProvider(a *Appointment) bool {
	return i.IsProvider() && a.ProviderID == i.UserID
}

// IsOwningCustomer возвращает true если пользователь клиент записи a
func (i Identity) IsOwningCustomer(a *Appointment) bool {
	return i.IsCustomer() && a.CustomerID == i.UserID
}

// IsParty возвращает true если пользователь мастер или клиент записи a
func (i Identity) IsParty(a *Appointment) bool {
	return i.IsOwningProvider(a) || i.IsOwningCustomer(a)
}

// CanSetStatus проверяет, кто может выполнить переход.
// Подтверждение и завершение только для мастера, остальные статусы доступны обеим сторонам
// и дальше проверяются CanTransition.
func (i Identity) CanSetStatus(a *Appointment, to AppointmentStatus) bool {
	switch to {
	case StatusConfirmed, StatusCompleted:
		return i.IsOwningProvider(a)
	default:
		return i.IsParty(a)
	}
}
