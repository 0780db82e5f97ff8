package model

import "time"

type User struct {
	ID           string `json:"id"`           // уникальный идентификатор пользователя
	Name         string `json:"name"`         // отображаемое имя
	Email        string `json:"email"`        // почта, используется как логин
	Role         string `json:"role"`         // роль: user, premium, vip, admin или своя
	Credits      int64  `json:"credits"`      // баланс в минимальных единицах валюты
	PasswordHash string `json:"passwordHash,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"` // data URI
	Bio          string `json:"bio,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
}

const RoleAdmin = "admin"

// Категории услуг. Набор расширяемый, это значения по умолчанию.
const (
	CategoryIMEI   = "IMEI"
	CategoryFile   = "FILE"
	CategoryServer = "SERVER"
	CategoryRemote = "REMOTE"
)

type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type QuantityOption struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       int64            `json:"price,omitempty"`  // устаревшее единое поле цены
	Prices      map[string]int64 `json:"prices,omitempty"` // цена по роли пользователя
	Category    string           `json:"category"`
	Fields      []CustomField    `json:"customFields,omitempty"`
	Quantities  []QuantityOption `json:"quantities,omitempty"`
}

// PriceFor возвращает цену товара для роли, с откатом на старое поле price.
func (p *Product) PriceFor(role string) int64 {
	if price, ok := p.Prices[role]; ok {
		return price
	}
	return p.Price
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"    // заказ создан, ждёт обработки
	OrderProcessing OrderStatus = "processing" // заказ в работе
	OrderCompleted  OrderStatus = "completed"  // услуга оказана
	OrderCancelled  OrderStatus = "cancelled"  // заказ отменён, средства возвращены
)

type Order struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	ProductID   string        `json:"productId"`
	ProductName string        `json:"productName"` // снимок имени товара
	Amount      int64         `json:"amount"`      // снимок цены на момент заказа
	Date        time.Time     `json:"date"`
	Status      OrderStatus   `json:"status"`
	Category    string        `json:"category"`
	Fields      []CustomField `json:"customFields,omitempty"`
	Quantity    int           `json:"quantity,omitempty"`
	ReplyCode   string        `json:"replyCode,omitempty"` // ответ администратора клиенту
}

type TopUpStatus string

const (
	TopUpPending  TopUpStatus = "pending"
	TopUpApproved TopUpStatus = "approved" // терминальный статус, кредиты зачислены
	TopUpRejected TopUpStatus = "rejected" // терминальный статус
)

type TopUpRequest struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	UserName      string      `json:"userName"` // снимок имени пользователя
	Amount        int64       `json:"amount"`
	BankAccount   string      `json:"bankAccount"`
	ImageProof    string      `json:"imageProof"` // data URI с подтверждением перевода
	Status        TopUpStatus `json:"status"`
	Date          time.Time   `json:"date"`
	Notes         string      `json:"notes,omitempty"`
	ProcessedDate *time.Time  `json:"processedDate,omitempty"`
}

type BankEntry struct {
	Name        string `json:"name"`
	Account     string `json:"account"`
	AccountName string `json:"accountName"`
}

type BankDetails struct {
	Name  string      `json:"name"`
	Banks []BankEntry `json:"banks"`
}

type NotificationType string

const (
	NotifyOrder   NotificationType = "order"
	NotifyUser    NotificationType = "user"
	NotifyProduct NotificationType = "product"
	NotifyTopUp   NotificationType = "topup"
)

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	Type      NotificationType `json:"type"`
}

type GeneralSettings struct {
	SiteTitle  string `json:"siteTitle"`
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	TimeFormat string `json:"timeFormat"`
}

type NotificationSettings struct {
	OrderUpdates   bool   `json:"orderUpdates"`
	UserSignups    bool   `json:"userSignups"`
	ProductUpdates bool   `json:"productUpdates"`
	Marketing      bool   `json:"marketing"`
	EmailDigest    string `json:"emailDigest"`
}

type AppearanceSettings struct {
	Theme           string `json:"theme"`
	CompactMode     bool   `json:"compactMode"`
	SidebarExpanded bool   `json:"sidebarExpanded"`
	HighContrast    bool   `json:"highContrast"`
}

type AppSettings struct {
	General       GeneralSettings      `json:"general"`
	Notifications NotificationSettings `json:"notifications"`
	Appearance    AppearanceSettings   `json:"appearance"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		General: GeneralSettings{
			SiteTitle:  "TechFix Hub",
			Language:   "en",
			DateFormat: "MM/DD/YYYY",
			TimeFormat: "12h",
		},
		Notifications: NotificationSettings{
			OrderUpdates:   true,
			UserSignups:    true,
			ProductUpdates: true,
			Marketing:      false,
			EmailDigest:    "weekly",
		},
		Appearance: AppearanceSettings{
			Theme:           "light",
			CompactMode:     false,
			SidebarExpanded: true,
			HighContrast:    false,
		},
	}
}

func DefaultBankDetails() BankDetails {
	return BankDetails{
		Name: "TechFix Hub Corp.",
		Banks: []BankEntry{
			{Name: "Bank Central Asia (BCA)", Account: "1234567890", AccountName: "TechFix Hub"},
			{Name: "Bank Mandiri", Account: "0987654321", AccountName: "TechFix Hub"},
		},
	}
}

func DefaultRoles() []string {
	return []string{"user", "premium", "vip", "admin"}
}
