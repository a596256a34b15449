package main

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

const tenantHeader = "X-Tenant-ID"

func registerRoutes(engine *gin.Engine, s *store) {
	engine.GET("/tenants", s.listTenants)
	engine.GET("/facilities", s.listFacilities)

	engine.GET("/permissions", s.listPermissions)
	engine.POST("/permissions", s.createPermission)
	engine.PUT("/permissions/:id", s.updatePermission)
	engine.DELETE("/permissions/:id", s.deletePermission)

	engine.GET("/roles", s.listRoles)
	engine.POST("/roles", s.createRole)
	engine.PUT("/roles/:id", s.updateRole)
	engine.DELETE("/roles/:id", s.deleteRole)

	engine.GET("/users", s.listUsers)
	engine.POST("/users", s.createUser)
	engine.PUT("/users/:id", s.updateUser)
	engine.DELETE("/users/:id", s.deleteUser)

	engine.GET("/discrepancies", s.listDiscrepancies)
	engine.GET("/discrepancy-reasons", s.listReasons)
	engine.POST("/discrepancies/:id/justify", s.justifyDiscrepancy)

	engine.GET("/traceability-events", s.listEvents)
}

func tenantOf(c *gin.Context) (string, bool) {
	tenant := strings.TrimSpace(c.GetHeader(tenantHeader))
	if tenant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tenant header required"})
		return "", false
	}
	return tenant, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
}

func invalid(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "validation failed",
		"errors":  fields,
	})
}

func (s *store) listTenants(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": s.tenants})
}

func (s *store) listFacilities(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": s.facilities})
}

type permissionInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (in permissionInput) validate() map[string][]string {
	fields := map[string][]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (s *store) listPermissions(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []permissionRow{}
	for _, p := range s.permissions {
		if p.TenantID == tenant {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *store) createPermission(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in permissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if fields := in.validate(); fields != nil {
		invalid(c, fields)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := permissionRow{ID: s.id(), Name: strings.TrimSpace(in.Name), Description: in.Description, TenantID: tenant}
	s.permissions = append(s.permissions, row)
	c.JSON(http.StatusCreated, row)
}

func (s *store) updatePermission(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in permissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if fields := in.validate(); fields != nil {
		invalid(c, fields)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.permissions {
		if p.ID == c.Param("id") && p.TenantID == tenant {
			s.permissions[i].Name = strings.TrimSpace(in.Name)
			s.permissions[i].Description = in.Description
			c.JSON(http.StatusOK, s.permissions[i])
			return
		}
	}
	notFound(c)
}

func (s *store) deletePermission(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.permissions {
		if p.ID == c.Param("id") && p.TenantID == tenant {
			s.permissions = append(s.permissions[:i], s.permissions[i+1:]...)
			for j := range s.roles {
				s.roles[j].Permissions = remove(s.roles[j].Permissions, p.ID)
			}
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}

type roleInput struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions"`
}

func (in roleInput) validate() map[string][]string {
	fields := map[string][]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// roleOut nests full permission objects when with_permissions is set and
// bare IDs otherwise, matching the two encodings of the real API.
func (s *store) roleOut(r roleRow, withPermissions, withCount bool) gin.H {
	out := gin.H{"id": r.ID, "name": r.Name, "tenant_id": r.TenantID}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if withPermissions {
		nested := []gin.H{}
		for _, pid := range r.Permissions {
			for _, p := range s.permissions {
				if p.ID == pid {
					nested = append(nested, gin.H{"id": p.ID, "name": p.Name})
				}
			}
		}
		out["permissions"] = nested
	} else {
		out["permissions"] = r.Permissions
	}
	if withCount {
		count := 0
		for _, u := range s.users {
			if contains(u.Roles, r.ID) {
				count++
			}
		}
		out["users_count"] = count
	}
	return out
}

func (s *store) listRoles(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	withPermissions := c.Query("with_permissions") == "true"
	withCount := c.Query("with_users_count") == "true"
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, r := range s.roles {
		if r.TenantID == tenant {
			out = append(out, s.roleOut(r, withPermissions, withCount))
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *store) createRole(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in roleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if fields := in.validate(); fields != nil {
		invalid(c, fields)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := roleRow{
		ID:          s.id(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		TenantID:    tenant,
		Permissions: in.Permissions,
	}
	s.roles = append(s.roles, row)
	c.JSON(http.StatusCreated, s.roleOut(row, true, true))
}

func (s *store) updateRole(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in roleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if fields := in.validate(); fields != nil {
		invalid(c, fields)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.roles {
		if r.ID == c.Param("id") && r.TenantID == tenant {
			s.roles[i].Name = strings.TrimSpace(in.Name)
			s.roles[i].Description = in.Description
			s.roles[i].Permissions = in.Permissions
			c.JSON(http.StatusOK, s.roleOut(s.roles[i], true, true))
			return
		}
	}
	notFound(c)
}

func (s *store) deleteRole(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.roles {
		if r.ID == c.Param("id") && r.TenantID == tenant {
			s.roles = append(s.roles[:i], s.roles[i+1:]...)
			for j := range s.users {
				s.users[j].Roles = remove(s.users[j].Roles, r.ID)
			}
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}

type userInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Password string   `json:"password"`
}

func (in userInput) validate(isCreate bool) map[string][]string {
	fields := map[string][]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = append(fields["name"], "name is required")
	}
	if !strings.Contains(in.Email, "@") {
		fields["email"] = append(fields["email"], "a valid email is required")
	}
	if isCreate && in.Password == "" {
		fields["password"] = append(fields["password"], "password is required")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (s *store) userOut(u userRow, withRoles bool) gin.H {
	out := gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "tenant_id": u.TenantID}
	if withRoles {
		nested := []gin.H{}
		for _, rid := range u.Roles {
			for _, r := range s.roles {
				if r.ID == rid {
					nested = append(nested, gin.H{"id": r.ID, "name": r.Name})
				}
			}
		}
		out["roles"] = nested
	} else {
		out["roles"] = u.Roles
	}
	return out
}

func (s *store) listUsers(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	withRoles := c.Query("with_roles") == "true"
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, u := range s.users {
		if u.TenantID == tenant {
			out = append(out, s.userOut(u, withRoles))
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *store) createUser(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in userInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if fields := in.validate(true); fields != nil {
		invalid(c, fields)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := userRow{
		ID:       s.id(),
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		TenantID: tenant,
		Roles:    in.Roles,
	}
	s.users = append(s.users, row)
	c.JSON(http.StatusCreated, s.userOut(row, true))
}

func (s *store) updateUser(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in userInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if fields := in.validate(false); fields != nil {
		invalid(c, fields)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == c.Param("id") && u.TenantID == tenant {
			s.users[i].Name = strings.TrimSpace(in.Name)
			s.users[i].Email = strings.TrimSpace(in.Email)
			s.users[i].Roles = in.Roles
			c.JSON(http.StatusOK, s.userOut(s.users[i], true))
			return
		}
	}
	notFound(c)
}

func (s *store) deleteUser(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == c.Param("id") && u.TenantID == tenant {
			s.users = append(s.users[:i], s.users[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}

func (s *store) listDiscrepancies(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []discrepancyRow{}
	for _, d := range s.discrepancies {
		if d.TenantID == tenant && !d.Justified {
			out = append(out, d)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *store) listReasons(c *gin.Context) {
	if _, ok := tenantOf(c); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": s.reasons})
}

type justifyInput struct {
	ReasonID string `json:"reason_id"`
	Notes    string `json:"notes"`
}

func (s *store) justifyDiscrepancy(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	var in justifyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, map[string][]string{"body": {"malformed json"}})
		return
	}
	if strings.TrimSpace(in.ReasonID) == "" {
		invalid(c, map[string][]string{"reason_id": {"reason is required"}})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.discrepancies {
		if d.ID == c.Param("id") && d.TenantID == tenant && !d.Justified {
			s.discrepancies[i].Justified = true
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c)
}

func (s *store) listEvents(c *gin.Context) {
	tenant, ok := tenantOf(c)
	if !ok {
		return
	}
	areaID := c.Query("area_id")
	batchID := c.Query("batch_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []eventRow{}
	for _, e := range s.events {
		if e.TenantID != tenant {
			continue
		}
		if areaID != "" && e.AreaID != areaID {
			continue
		}
		if batchID != "" && e.BatchID != batchID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
