package configs

import "github.com/shivamnegi1705/khidki-backend/models"

// Seller returns the business details printed on every tax invoice. The
// values can be overridden per deployment via the environment; the defaults
// match the registered business.
func Seller() models.SellerDetails {
	seller := models.SellerDetails{
		Name:    "Shivam Retail Pvt. Ltd.",
		Address: "123, MG Road, Bengaluru, Karnataka - 560001",
		GSTIN:   "29ABCDE1234F1Z5",
		Phone:   "+91-9876543210",
		Email:   "contact@shivamretail.in",
	}
	if v := loadEnv("SELLER_NAME"); v != "" {
		seller.Name = v
	}
	if v := loadEnv("SELLER_ADDRESS"); v != "" {
		seller.Address = v
	}
	if v := loadEnv("SELLER_GSTIN"); v != "" {
		seller.GSTIN = v
	}
	if v := loadEnv("SELLER_PHONE"); v != "" {
		seller.Phone = v
	}
	if v := loadEnv("SELLER_EMAIL"); v != "" {
		seller.Email = v
	}
	return seller
}
