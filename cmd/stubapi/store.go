package main

import (
	"strconv"
	"sync"
	"time"
)

// store is the in-memory backend. Every slice is tenant-tagged; handlers
// filter on the X-Tenant-ID header the way the real API does.
type store struct {
	mu     sync.Mutex
	nextID int

	tenants       []tenantRow
	facilities    []facilityRow
	permissions   []permissionRow
	roles         []roleRow
	users         []userRow
	discrepancies []discrepancyRow
	reasons       []reasonRow
	events        []eventRow
}

type tenantRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type facilityRow struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	TenantID *string `json:"tenant_id,omitempty"`
}

type permissionRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TenantID    string  `json:"tenant_id"`
}

type roleRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	TenantID    string   `json:"tenant_id"`
	Permissions []string `json:"-"`
}

type userRow struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"-"`
}

type discrepancyRow struct {
	ID               string  `json:"id"`
	BatchName        string  `json:"batch_name"`
	LogicalQuantity  float64 `json:"logical_quantity"`
	PhysicalQuantity float64 `json:"physical_quantity"`
	Unit             string  `json:"unit"`
	TenantID         string  `json:"-"`
	Justified        bool    `json:"-"`
}

type reasonRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type eventRow struct {
	ID           string    `json:"id,omitempty"`
	BatchID      string    `json:"batch_id"`
	AreaID       string    `json:"area_id"`
	EventType    string    `json:"event_type"`
	Method       string    `json:"method,omitempty"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UserName     string    `json:"user_name"`
	TenantID     string    `json:"-"`
}

func (s *store) id() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

func ptr(v string) *string { return &v }

// newStore seeds two tenants worth of demo data. One traceability event
// deliberately has no ID to exercise the console's legacy-row handling.
func newStore() *store {
	s := &store{nextID: 100}
	now := time.Now().UTC()

	s.tenants = []tenantRow{
		{ID: "1", Name: "Northern Leaf Ops"},
		{ID: "2", Name: "Pacific Grow Co"},
	}
	s.facilities = []facilityRow{
		{ID: "10", Name: "Thunder Bay Cultivation", TenantID: ptr("1")},
		{ID: "11", Name: "Kelowna Processing", TenantID: ptr("2")},
		{ID: "12", Name: "Orphan Site"},
	}
	s.permissions = []permissionRow{
		{ID: "20", Name: "batches.create", Description: ptr("Create cultivation batches"), TenantID: "1"},
		{ID: "21", Name: "batches.move", Description: ptr("Move batches between areas"), TenantID: "1"},
		{ID: "22", Name: "inventory.adjust", TenantID: "1"},
		{ID: "23", Name: "reports.read", TenantID: "2"},
	}
	s.roles = []roleRow{
		{ID: "30", Name: "Cultivator", Description: ptr("Grow room staff"), TenantID: "1", Permissions: []string{"20", "21"}},
		{ID: "31", Name: "Inventory Lead", TenantID: "1", Permissions: []string{"21", "22"}},
		{ID: "32", Name: "Auditor", TenantID: "2", Permissions: []string{"23"}},
	}
	s.users = []userRow{
		{ID: "40", Name: "Maya Singh", Email: "maya@northernleaf.example", TenantID: "1", Roles: []string{"30"}},
		{ID: "41", Name: "Jon Tremblay", Email: "jon@northernleaf.example", TenantID: "1", Roles: []string{"30", "31"}},
		{ID: "42", Name: "Ana Flores", Email: "ana@pacificgrow.example", TenantID: "2", Roles: []string{"32"}},
	}
	s.discrepancies = []discrepancyRow{
		{ID: "50", BatchName: "BT-2025-114", LogicalQuantity: 1200, PhysicalQuantity: 1187.5, Unit: "g", TenantID: "1"},
		{ID: "51", BatchName: "BT-2025-119", LogicalQuantity: 300, PhysicalQuantity: 305, Unit: "g", TenantID: "1"},
	}
	s.reasons = []reasonRow{
		{ID: "60", Label: "Moisture loss during drying"},
		{ID: "61", Label: "Scale calibration drift"},
		{ID: "62", Label: "Destruction event"},
	}
	s.events = []eventRow{
		{ID: "70", BatchID: "114", AreaID: "5", EventType: "harvest", Quantity: 1200, Unit: "g",
			CreatedAt: now.Add(-48 * time.Hour), UserName: "Maya Singh", TenantID: "1"},
		{ID: "71", BatchID: "114", AreaID: "5", EventType: "move", Method: "cart",
			FromLocation: "Grow Room A", ToLocation: "Dry Room 1", Quantity: 1200, Unit: "g",
			CreatedAt: now.Add(-24 * time.Hour), UserName: "Jon Tremblay", TenantID: "1"},
		{BatchID: "114", AreaID: "6", EventType: "adjustment", Quantity: -12.5, Unit: "g",
			Description: "moisture loss", CreatedAt: now.Add(-2 * time.Hour), UserName: "Jon Tremblay", TenantID: "1"},
		{ID: "73", BatchID: "200", AreaID: "9", EventType: "harvest", Quantity: 800, Unit: "g",
			CreatedAt: now.Add(-30 * time.Hour), UserName: "Ana Flores", TenantID: "2"},
	}
	return s
}
