package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/devlink/devlink/internal/httpapi"
	"github.com/devlink/devlink/internal/log"
	"github.com/devlink/devlink/internal/queue"
	"github.com/devlink/devlink/internal/repo"
)

const testSecret = "test-secret"

type testEnv struct {
	T      *testing.T
	Ctx    context.Context
	Mongo  *mongodb.MongoDBContainer
	Store  *repo.Store
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mc, err := mongodb.Run(ctx, "mongo:6")
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}

	if _, err := log.Init(false); err != nil {
		t.Fatalf("log init: %v", err)
	}

	store, err := repo.NewStore(ctx, uri, "devlink_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}

	gin.SetMode(gin.TestMode)
	h := httpapi.NewHandler(store, testSecret, time.Hour, queue.NewNoop(), nil)
	r := httpapi.NewRouter(h)

	return &testEnv{T: t, Ctx: ctx, Mongo: mc, Store: store, Router: r}
}

func (e *testEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close(e.Ctx)
	}
	if e.Mongo != nil {
		_ = e.Mongo.Terminate(e.Ctx)
	}
}

// do runs a request against the in-memory router.
func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	e.T.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

// registerAndLogin registers a user and returns the login token.
func (e *testEnv) registerAndLogin(email, password, name string) string {
	e.T.Helper()
	w := e.do("POST", "/users",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != 201 {
		e.T.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}
	w = e.do("POST", "/auth", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != 200 {
		e.T.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var lr struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lr); err != nil || lr.Token == "" {
		e.T.Fatalf("login resp parse: %v; body=%s", err, w.Body.String())
	}
	return lr.Token
}
