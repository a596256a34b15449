package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

func TestRoleListDecodesNestedPermissions(t *testing.T) {
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.GET("/api/v1/roles", func(c *gin.Context) {
			if c.Query("with_permissions") != "true" || c.Query("with_users_count") != "true" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "missing relation flags"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{
				{
					"id": 1, "name": "Admin", "users_count": 3,
					// Nested permission objects.
					"permissions": []gin.H{{"id": 10, "name": "a"}, {"id": 11, "name": "b"}},
				},
				{
					"id": 2, "name": "Viewer", "users_count": 0,
					// Bare ID list; older endpoints still answer this way.
					"permissions": []int{12},
				},
			}})
		})
	})

	roles, err := NewRoleGateway(client).List(context.Background(), domain.Scope{TenantID: "7"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if !reflect.DeepEqual(roles[0].Permissions, []string{"10", "11"}) {
		t.Fatalf("unexpected nested permissions %v", roles[0].Permissions)
	}
	if !reflect.DeepEqual(roles[1].Permissions, []string{"12"}) {
		t.Fatalf("unexpected bare permissions %v", roles[1].Permissions)
	}
	if roles[0].UsersCount != 3 {
		t.Fatalf("unexpected users count %d", roles[0].UsersCount)
	}
}

func TestRoleUpdateSendsFullPermissionSet(t *testing.T) {
	var body map[string]json.RawMessage
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.PUT("/api/v1/roles/:id", func(c *gin.Context) {
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "name": "Admin", "permissions": []string{"11"}})
		})
	})

	role := domain.Role{ID: "1", Name: "Admin", Permissions: []string{"11"}}
	updated, err := NewRoleGateway(client).Update(context.Background(), domain.Scope{TenantID: "7"}, role)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var sent []string
	if err := json.Unmarshal(body["permissions"], &sent); err != nil {
		t.Fatalf("decode sent permissions: %v", err)
	}
	if !reflect.DeepEqual(sent, []string{"11"}) {
		t.Fatalf("expected full replacement set [11], got %v", sent)
	}
	if !reflect.DeepEqual(updated.Permissions, []string{"11"}) {
		t.Fatalf("unexpected returned permissions %v", updated.Permissions)
	}
}

func TestRoleCreateEmptySetSerializesAsEmptyArray(t *testing.T) {
	var raw []byte
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.POST("/api/v1/roles", func(c *gin.Context) {
			raw, _ = c.GetRawData()
			c.JSON(http.StatusCreated, gin.H{"id": 9, "name": "Empty"})
		})
	})

	if _, err := NewRoleGateway(client).Create(context.Background(), domain.Scope{TenantID: "7"}, domain.Role{Name: "Empty"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var body struct {
		Permissions json.RawMessage `json:"permissions"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	// The relation is replace-on-submit, so "no permissions" must be an
	// explicit empty array, not a missing field.
	if string(body.Permissions) != "[]" {
		t.Fatalf("expected explicit empty array, got %s", body.Permissions)
	}
}

func TestRoleDelete(t *testing.T) {
	var deletedID string
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.DELETE("/api/v1/roles/:id", func(c *gin.Context) {
			deletedID = c.Param("id")
			c.Status(http.StatusNoContent)
		})
	})

	if err := NewRoleGateway(client).Delete(context.Background(), domain.Scope{TenantID: "7"}, "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deletedID != "2" {
		t.Fatalf("unexpected deleted id %q", deletedID)
	}
}
