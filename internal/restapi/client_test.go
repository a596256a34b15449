package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestClient(t *testing.T, register func(*gin.Engine)) *Client {
	t.Helper()

	engine := gin.New()
	register(engine)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	client, err := New(server.URL+"/api/v1", "test-token", 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientSendsAuthAndTenantHeaders(t *testing.T) {
	var gotAuth, gotTenant string
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.GET("/api/v1/permissions", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			gotTenant = c.GetHeader("X-Tenant-ID")
			c.JSON(http.StatusOK, []gin.H{})
		})
	})

	gw := NewPermissionGateway(client)
	if _, err := gw.List(context.Background(), domain.Scope{TenantID: "7"}); err != nil {
		t.Fatalf("list: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotTenant != "7" {
		t.Fatalf("unexpected tenant header %q", gotTenant)
	}
}

func TestClientOmitsTenantHeaderWhenUnscoped(t *testing.T) {
	tenantSent := false
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.GET("/api/v1/tenants", func(c *gin.Context) {
			_, tenantSent = c.Request.Header["X-Tenant-Id"]
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{{"id": 1, "name": "Verdant"}}})
		})
	})

	gw := NewTenantGateway(client)
	tenants, err := gw.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tenantSent {
		t.Fatal("unscoped read must not carry a tenant header")
	}
	if len(tenants) != 1 || tenants[0].ID != "1" || tenants[0].Name != "Verdant" {
		t.Fatalf("unexpected tenants %v", tenants)
	}
}

func TestClientDecodesBothCollectionShapes(t *testing.T) {
	client := newTestClient(t, func(engine *gin.Engine) {
		// Bare array.
		engine.GET("/api/v1/permissions", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{{"id": "p1", "name": "plants:read"}})
		})
		// Envelope.
		engine.GET("/api/v1/users", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []gin.H{
				{"id": 5, "name": "Ana", "email": "ana@example.com", "tenant_id": 7, "roles": []int{2, 3}},
			}})
		})
	})

	permissions, err := NewPermissionGateway(client).List(context.Background(), domain.Scope{TenantID: "7"})
	if err != nil {
		t.Fatalf("list permissions: %v", err)
	}
	if len(permissions) != 1 || permissions[0].ID != "p1" {
		t.Fatalf("unexpected permissions %v", permissions)
	}

	users, err := NewUserGateway(client).List(context.Background(), domain.Scope{TenantID: "7"})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != "5" || users[0].TenantID != "7" {
		t.Fatalf("unexpected users %v", users)
	}
	if len(users[0].Roles) != 2 || users[0].Roles[0] != "2" {
		t.Fatalf("expected numeric role ids normalized, got %v", users[0].Roles)
	}
}

func TestClientParsesRemoteErrorDetails(t *testing.T) {
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.POST("/api/v1/users", func(c *gin.Context) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The given data was invalid.",
				"errors": gin.H{
					"email":    []string{"has already been taken"},
					"password": "is too short",
				},
			})
		})
	})

	_, err := NewUserGateway(client).Create(context.Background(), domain.Scope{TenantID: "7"},
		domain.User{Name: "Ana", Email: "ana@example.com", TenantID: "7"}, "pw")

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", remote.Status)
	}
	if remote.Message != "The given data was invalid." {
		t.Fatalf("unexpected message %q", remote.Message)
	}
	if got := remote.Details["email"]; len(got) != 1 || got[0] != "has already been taken" {
		t.Fatalf("unexpected email detail %v", remote.Details)
	}
	// Single-string detail is normalized into a list.
	if got := remote.Details["password"]; len(got) != 1 || got[0] != "is too short" {
		t.Fatalf("unexpected password detail %v", remote.Details)
	}
}

func TestClientErrorBodyFallback(t *testing.T) {
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.GET("/api/v1/permissions", func(c *gin.Context) {
			c.String(http.StatusBadGateway, "<html>upstream down</html>")
		})
	})

	_, err := NewPermissionGateway(client).List(context.Background(), domain.Scope{TenantID: "7"})

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Message != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("expected status-text fallback, got %q", remote.Message)
	}
}

func TestClientRejectsRelativeBaseURL(t *testing.T) {
	if _, err := New("api.example.com/v1", "", 0, zap.NewNop()); err == nil {
		t.Fatal("expected error for non-absolute base url")
	}
}
