package api

// Services agrupa todos los clientes REST sobre un mismo *Client.
type Services struct {
	Dishes       *DishService
	Orders       *OrderService
	Customers    *CustomerService
	Avatars      *AvatarService
	Companies    *CompanyService
	Headquarters *HeadquarterService
	Settings     *SettingsService
	TempUsers    *TempUserService
}

// NewServices construye todos los servicios.
func NewServices(c *Client) *Services {
	return &Services{
		Dishes:       NewDishService(c),
		Orders:       NewOrderService(c),
		Customers:    NewCustomerService(c),
		Avatars:      NewAvatarService(c),
		Companies:    NewCompanyService(c),
		Headquarters: NewHeadquarterService(c),
		Settings:     NewSettingsService(c),
		TempUsers:    NewTempUserService(c),
	}
}
