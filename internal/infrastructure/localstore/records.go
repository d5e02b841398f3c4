package localstore

import (
	"time"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
)

// Registros con el formato camelCase de las colecciones locales.

type companyRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NIT       string    `json:"nit"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func fromCompany(c *entity.Company) companyRecord {
	return companyRecord{c.ID, c.Name, c.NIT, c.Address, c.Phone, c.Email, c.Status, c.CreatedAt, c.UpdatedAt}
}

func (r companyRecord) entity() *entity.Company {
	return &entity.Company{ID: r.ID, Name: r.Name, NIT: r.NIT, Address: r.Address, Phone: r.Phone, Email: r.Email,
		Status: r.Status, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type moduleRecord struct {
	CompanyID   string     `json:"companyId"`
	ModuleName  string     `json:"moduleName"`
	IsActive    bool       `json:"isActive"`
	ActivatedAt time.Time  `json:"activatedAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func fromModule(m *entity.CompanyModule) moduleRecord {
	return moduleRecord{m.CompanyID, m.ModuleName, m.IsActive, m.ActivatedAt, m.ExpiresAt, m.UpdatedAt}
}

func (r moduleRecord) entity() *entity.CompanyModule {
	return &entity.CompanyModule{CompanyID: r.CompanyID, ModuleName: r.ModuleName, IsActive: r.IsActive,
		ActivatedAt: r.ActivatedAt, ExpiresAt: r.ExpiresAt, UpdatedAt: r.UpdatedAt}
}

type userRecord struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"companyId"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Capabilities []string  `json:"capabilities,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func fromUser(u *entity.User) userRecord {
	return userRecord{u.ID, u.CompanyID, u.Username, u.Email, u.PasswordHash, u.Name, u.Role,
		append([]string(nil), u.Capabilities...), u.Status, u.CreatedAt, u.UpdatedAt}
}

func (r userRecord) entity() *entity.User {
	return &entity.User{ID: r.ID, CompanyID: r.CompanyID, Username: r.Username, Email: r.Email,
		PasswordHash: r.PasswordHash, Name: r.Name, Role: r.Role, Capabilities: append([]string(nil), r.Capabilities...),
		Status: r.Status, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type productRecord struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"companyId"`
	Name            string    `json:"name"`
	Category        string    `json:"category,omitempty"`
	ScriptID        string    `json:"scriptId"`
	ScriptFile      string    `json:"scriptFile,omitempty"`
	AttendanceTypes []string  `json:"attendanceTypes"`
	PersonTypes     []string  `json:"personTypes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func fromProduct(p *entity.Product) productRecord {
	return productRecord{p.ID, p.CompanyID, p.Name, p.Category, p.ScriptID, p.ScriptFile,
		append([]string{}, p.AttendanceTypes...), append([]string{}, p.PersonTypes...), p.IsActive, p.CreatedAt, p.UpdatedAt}
}

func (r productRecord) entity() *entity.Product {
	return &entity.Product{ID: r.ID, CompanyID: r.CompanyID, Name: r.Name, Category: r.Category, ScriptID: r.ScriptID,
		ScriptFile: r.ScriptFile, AttendanceTypes: append([]string{}, r.AttendanceTypes...),
		PersonTypes: append([]string{}, r.PersonTypes...), IsActive: r.IsActive, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type stepRecord struct {
	ID          string                  `json:"id"`
	CompanyID   string                  `json:"companyId"`
	ProductID   string                  `json:"productId"`
	Title       string                  `json:"title"`
	Content     string                  `json:"content"`
	Buttons     []entity.Button         `json:"buttons"`
	Tabulations []entity.StepTabulation `json:"tabulations"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

func fromStep(s *entity.ScriptStep) stepRecord {
	return stepRecord{s.ID, s.CompanyID, s.ProductID, s.Title, s.Content,
		append([]entity.Button{}, s.Buttons...), append([]entity.StepTabulation{}, s.Tabulations...), s.UpdatedAt}
}

func (r stepRecord) entity() *entity.ScriptStep {
	return &entity.ScriptStep{ID: r.ID, CompanyID: r.CompanyID, ProductID: r.ProductID, Title: r.Title, Content: r.Content,
		Buttons: append([]entity.Button{}, r.Buttons...), Tabulations: append([]entity.StepTabulation{}, r.Tabulations...),
		UpdatedAt: r.UpdatedAt}
}

type tabulationRecord struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func fromTabulation(t *entity.Tabulation) tabulationRecord {
	return tabulationRecord{t.ID, t.CompanyID, t.Name, t.Description, t.Color, t.IsActive, t.CreatedAt, t.UpdatedAt}
}

func (r tabulationRecord) entity() *entity.Tabulation {
	return &entity.Tabulation{ID: r.ID, CompanyID: r.CompanyID, Name: r.Name, Description: r.Description, Color: r.Color,
		IsActive: r.IsActive, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type situationRecord struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func fromSituation(s *entity.Situation) situationRecord {
	return situationRecord{s.ID, s.CompanyID, s.Name, s.Description, s.IsActive, s.CreatedAt, s.UpdatedAt}
}

func (r situationRecord) entity() *entity.Situation {
	return &entity.Situation{ID: r.ID, CompanyID: r.CompanyID, Name: r.Name, Description: r.Description,
		IsActive: r.IsActive, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type channelRecord struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func fromChannel(c *entity.Channel) channelRecord {
	return channelRecord{c.ID, c.CompanyID, c.Name, c.Contact, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt}
}

func (r channelRecord) entity() *entity.Channel {
	return &entity.Channel{ID: r.ID, CompanyID: r.CompanyID, Name: r.Name, Contact: r.Contact, Description: r.Description,
		IsActive: r.IsActive, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type noteRecord struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func fromNote(n *entity.Note) noteRecord {
	return noteRecord{n.ID, n.CompanyID, n.UserID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt}
}

func (r noteRecord) entity() *entity.Note {
	return &entity.Note{ID: r.ID, CompanyID: r.CompanyID, UserID: r.UserID, Title: r.Title, Content: r.Content,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r companyRecord) recordID() string {
	return r.ID
}

func (r userRecord) recordID() string {
	return r.ID
}

func (r userRecord) recordCompany() string {
	return r.CompanyID
}

func (r productRecord) recordID() string {
	return r.ID
}

func (r productRecord) recordCompany() string {
	return r.CompanyID
}

func (r tabulationRecord) recordID() string {
	return r.ID
}

func (r tabulationRecord) recordCompany() string {
	return r.CompanyID
}

func (r situationRecord) recordID() string {
	return r.ID
}

func (r situationRecord) recordCompany() string {
	return r.CompanyID
}

func (r channelRecord) recordID() string {
	return r.ID
}

func (r channelRecord) recordCompany() string {
	return r.CompanyID
}

func (r noteRecord) recordID() string {
	return r.ID
}

func (r noteRecord) recordCompany() string {
	return r.CompanyID
}
