package billing

import (
	"fmt"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/models"
)

// Defaults used when a collection is missing from the store or unreadable.

func defaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "m1", Name: "Margherita Pizza", Price: 250, GST: 0.05},
		{ID: "m2", Name: "Veg Biryani", Price: 180, GST: 0.12},
		{ID: "m3", Name: "Cold Coffee", Price: 90, GST: 0.05},
		{ID: "m4", Name: "Paneer Butter Masala", Price: 220, GST: 0.05},
		{ID: "m5", Name: "Tandoori Chicken", Price: 320, GST: 0.05},
	}
}

func defaultTables() []models.Table {
	tables := make([]models.Table, 8)
	for i := range tables {
		tables[i] = models.Table{
			ID:   fmt.Sprintf("T%d", i+1),
			Name: fmt.Sprintf("Table %d", i+1),
		}
	}
	return tables
}

func defaultWaiters() []models.Waiter {
	return []models.Waiter{
		{ID: "w1", Name: "Ravi"},
		{ID: "w2", Name: "Suma"},
		{ID: "w3", Name: "Priya"},
	}
}

// defaultUsers are the demo accounts: admin/admin123, ravi/ravi123, suma/suma123.
func defaultUsers(cost int) ([]models.User, error) {
	seeds := []models.NewUser{
		{ID: "admin", Name: "Administrator", Role: models.RoleAdmin, Password: "admin123"},
		{ID: "ravi", Name: "Ravi", Role: models.RoleStaff, Password: "ravi123"},
		{ID: "suma", Name: "Suma", Role: models.RoleStaff, Password: "suma123"},
	}

	users := make([]models.User, 0, len(seeds))
	for _, seed := range seeds {
		hash, err := auth.HashPassword(seed.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", seed.ID, err)
		}
		users = append(users, models.User{ID: seed.ID, Name: seed.Name, Role: seed.Role, PasswordHash: hash})
	}
	return users, nil
}
