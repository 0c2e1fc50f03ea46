package identity

// DemoUser is the seeded shopper account, matching the demo storefront
// data. The password for all demo accounts is "password123".
const DemoPassword = "password123"

// Fixture returns the demo accounts.
func Fixture() []User {
	return []User{
		{
			ID:    "1",
			Name:  "John Doe",
			Email: "john@example.com",
			Phone: "+1234567890",
			Addresses: []Address{
				{
					ID:         "1",
					Name:       "Home",
					Line1:      "123 Main St",
					Line2:      "Apt 4B",
					City:       "New York",
					State:      "NY",
					PostalCode: "10001",
					IsDefault:  true,
				},
			},
			LoyaltyPoints: 150,
			Role:          "customer",
		},
		{
			ID:    "2",
			Name:  "Admin",
			Email: "admin@example.com",
			Role:  "admin",
		},
	}
}
