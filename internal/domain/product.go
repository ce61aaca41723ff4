package domain

type ProductCategory string

const (
	CategoryVestidos    ProductCategory = "VESTIDOS"
	CategoryJardineiras ProductCategory = "JARDINEIRAS"
	CategorySaias       ProductCategory = "SAIAS"
	CategoryAcessorios  ProductCategory = "ACESSORIOS"
)

type Product struct {
	ID          int32           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    ProductCategory `json:"category"`
	// Sale and rental prices are independent; the rental price covers the
	// fixed two-day rental term.
	SalePriceCents int32  `json:"sale_price_cents"`
	RentPriceCents int32  `json:"rent_price_cents"`
	ImageURL       string `json:"image_url"`
	ForSale        bool   `json:"for_sale"`
	ForRent        bool   `json:"for_rent"`
	Active         bool   `json:"active"`
	CreatedOn      string `json:"created_on"`
	UpdatedOn      string `json:"updated_on"`
}
