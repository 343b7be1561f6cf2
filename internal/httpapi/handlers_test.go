package httpapi_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/devlink/devlink/internal/domain"
)

func Test_Register_Login_Me(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	w := env.do("POST", "/users",
		`{"name":"John","email":"john@example.com","password":"secret1"}`, "")
	if w.Code != 201 {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var rr struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rr); err != nil || rr.Token == "" {
		t.Fatalf("register resp: %v %s", err, w.Body.String())
	}

	// duplicate email is rejected
	w = env.do("POST", "/users",
		`{"name":"John2","email":"john@example.com","password":"secret1"}`, "")
	if w.Code != 409 {
		t.Fatalf("duplicate register: %d %s", w.Code, w.Body.String())
	}

	tok := env.registerAndLogin("jane@example.com", "secret1", "Jane")

	w = env.do("GET", "/auth", "", tok)
	if w.Code != 200 {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	var me domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatal(err)
	}
	if me.Email != "jane@example.com" || me.Name != "Jane" {
		t.Fatalf("unexpected me: %+v", me)
	}
	if me.Avatar == "" {
		t.Fatal("avatar must be derived at registration")
	}
	var raw map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if _, leaked := raw["password_hash"]; leaked {
		t.Fatal("password hash leaked in /auth response")
	}
}

func Test_Register_Validation(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	w := env.do("POST", "/users", `{"name":"A","email":"not-an-email","password":"123"}`, "")
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || len(resp.Errors) == 0 {
		t.Fatalf("expected field errors, got %s", w.Body.String())
	}
}

func Test_AuthGate_FailsClosed(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		w := env.do("POST", "/posts", `{"text":"hi"}`, tok)
		if w.Code != 401 {
			t.Fatalf("token %q: expected 401, got %d %s", tok, w.Code, w.Body.String())
		}
	}
}

func Test_Profile_CreateReplace_And_ExperienceOrdering(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tok := env.registerAndLogin("a@x.com", "secret1", "A")

	// missing status/skills → validation failure
	w := env.do("POST", "/profile", `{"company":"Acme"}`, tok)
	if w.Code != 400 {
		t.Fatalf("expected 400: %d %s", w.Code, w.Body.String())
	}

	w = env.do("POST", "/profile",
		`{"status":"Developer","skills":["go"],"company":"Acme","social":{"twitter":"https://twitter.com/a"}}`, tok)
	if w.Code != 200 {
		t.Fatalf("create profile: %d %s", w.Code, w.Body.String())
	}

	// experience entries go in most-recent-first
	w = env.do("PUT", "/profile/experience",
		`{"title":"Engineer","company":"Acme","from":"2020-01-01"}`, tok)
	if w.Code != 200 {
		t.Fatalf("add experience: %d %s", w.Code, w.Body.String())
	}
	w = env.do("PUT", "/profile/experience",
		`{"title":"Intern","company":"Initech","from":"2019-06-01","to":"2019-12-31"}`, tok)
	if w.Code != 200 {
		t.Fatalf("add experience 2: %d %s", w.Code, w.Body.String())
	}
	var p domain.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Experience))
	}
	if p.Experience[0].Title != "Intern" || p.Experience[1].Title != "Engineer" {
		t.Fatalf("ordering wrong: %s, %s", p.Experience[0].Title, p.Experience[1].Title)
	}
	if p.Experience[0].ID == "" || p.Experience[0].ID == p.Experience[1].ID {
		t.Fatal("entries need distinct stable ids")
	}

	// whole-document replace keeps experience untouched
	w = env.do("POST", "/profile", `{"status":"Manager","skills":["go","sql"]}`, tok)
	if w.Code != 200 {
		t.Fatalf("replace profile: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Status != "Manager" || p.Company != "" || p.Social.Twitter != "" {
		t.Fatalf("replace must overwrite all top-level fields: %+v", p)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("replace must not touch experience, got %d entries", len(p.Experience))
	}

	// removing a nonexistent entry is a no-op, not an error
	w = env.do("DELETE", "/profile/experience/nonexistent-id", "", tok)
	if w.Code != 200 {
		t.Fatalf("idempotent remove: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("no-op remove changed the profile: %d entries", len(p.Experience))
	}

	// removing a real entry works
	w = env.do("DELETE", "/profile/experience/"+p.Experience[0].ID, "", tok)
	if w.Code != 200 {
		t.Fatalf("remove: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Engineer" {
		t.Fatalf("wrong entry removed: %+v", p.Experience)
	}
}

func Test_Education_CurrentDropsEndDate(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tok := env.registerAndLogin("b@x.com", "secret1", "B")

	w := env.do("POST", "/profile", `{"status":"Student","skills":["go"]}`, tok)
	if w.Code != 200 {
		t.Fatalf("profile: %d %s", w.Code, w.Body.String())
	}

	w = env.do("PUT", "/profile/education",
		`{"school":"MIT","degree":"BSc","fieldofstudy":"CS","from":"2022-09-01","to":"2026-06-01","current":true}`, tok)
	if w.Code != 200 {
		t.Fatalf("add education: %d %s", w.Code, w.Body.String())
	}
	var p domain.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Education) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Education))
	}
	if !p.Education[0].Current || p.Education[0].To != nil {
		t.Fatalf("current entry must not carry an end date: %+v", p.Education[0])
	}
}

func Test_Profile_Delete(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tok := env.registerAndLogin("c@x.com", "secret1", "C")

	// nothing to delete yet
	w := env.do("DELETE", "/profile", "", tok)
	if w.Code != 404 {
		t.Fatalf("delete absent profile: %d %s", w.Code, w.Body.String())
	}

	if w = env.do("POST", "/profile", `{"status":"Dev","skills":["go"]}`, tok); w.Code != 200 {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	if w = env.do("DELETE", "/profile", "", tok); w.Code != 200 {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if w = env.do("GET", "/profile/me", "", tok); w.Code != 404 {
		t.Fatalf("me after delete: %d %s", w.Code, w.Body.String())
	}
}

func Test_Posts_Like_Idempotence_And_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tokA := env.registerAndLogin("a@x.com", "secret1", "A")
	tokB := env.registerAndLogin("b@x.com", "secret1", "B")

	w := env.do("POST", "/posts", `{"text":"hello"}`, tokA)
	if w.Code != 201 {
		t.Fatalf("create post: %d %s", w.Code, w.Body.String())
	}
	var post domain.Post
	if err := json.Unmarshal(w.Body.Bytes(), &post); err != nil {
		t.Fatal(err)
	}
	if post.Name != "A" || post.Avatar == "" {
		t.Fatalf("author snapshot missing: %+v", post)
	}
	id := post.ID.Hex()

	// B likes once
	w = env.do("PUT", "/posts/like/"+id, "", tokB)
	if w.Code != 200 {
		t.Fatalf("like: %d %s", w.Code, w.Body.String())
	}
	var likes []domain.Like
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatal(err)
	}
	if len(likes) != 1 {
		t.Fatalf("expected one like, got %d", len(likes))
	}

	// second like must conflict and change nothing
	w = env.do("PUT", "/posts/like/"+id, "", tokB)
	if w.Code != 409 {
		t.Fatalf("double like: %d %s", w.Code, w.Body.String())
	}
	w = env.do("GET", "/posts/"+id, "", "")
	if err := json.Unmarshal(w.Body.Bytes(), &post); err != nil {
		t.Fatal(err)
	}
	if len(post.Likes) != 1 {
		t.Fatalf("double like changed state: %d likes", len(post.Likes))
	}

	// unlike restores the pre-like state
	w = env.do("PUT", "/posts/unlike/"+id, "", tokB)
	if w.Code != 200 {
		t.Fatalf("unlike: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatal(err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected empty like set, got %d", len(likes))
	}

	// unliking again conflicts
	w = env.do("PUT", "/posts/unlike/"+id, "", tokB)
	if w.Code != 409 {
		t.Fatalf("double unlike: %d %s", w.Code, w.Body.String())
	}
}

func Test_Posts_Delete_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tokA := env.registerAndLogin("a@x.com", "secret1", "A")
	tokB := env.registerAndLogin("b@x.com", "secret1", "B")

	w := env.do("POST", "/posts", `{"text":"mine"}`, tokA)
	if w.Code != 201 {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var post domain.Post
	_ = json.Unmarshal(w.Body.Bytes(), &post)
	id := post.ID.Hex()

	// unauthenticated caller is rejected before ownership is checked
	if w = env.do("DELETE", "/posts/"+id, "", ""); w.Code != 401 {
		t.Fatalf("unauthenticated delete: %d", w.Code)
	}
	// wrong owner
	if w = env.do("DELETE", "/posts/"+id, "", tokB); w.Code != 403 {
		t.Fatalf("foreign delete: %d %s", w.Code, w.Body.String())
	}
	// owner
	if w = env.do("DELETE", "/posts/"+id, "", tokA); w.Code != 200 {
		t.Fatalf("owner delete: %d %s", w.Code, w.Body.String())
	}
	// gone now
	if w = env.do("DELETE", "/posts/"+id, "", tokA); w.Code != 404 {
		t.Fatalf("delete deleted: %d %s", w.Code, w.Body.String())
	}
}

func Test_Comments_AddRemove(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tokA := env.registerAndLogin("a@x.com", "secret1", "A")
	tokB := env.registerAndLogin("b@x.com", "secret1", "B")

	w := env.do("POST", "/posts", `{"text":"post"}`, tokA)
	var post domain.Post
	_ = json.Unmarshal(w.Body.Bytes(), &post)
	id := post.ID.Hex()

	w = env.do("POST", "/posts/comment/"+id, `{"text":"first"}`, tokB)
	if w.Code != 200 {
		t.Fatalf("comment: %d %s", w.Code, w.Body.String())
	}
	w = env.do("POST", "/posts/comment/"+id, `{"text":"second"}`, tokB)
	if w.Code != 200 {
		t.Fatalf("comment 2: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &post); err != nil {
		t.Fatal(err)
	}
	if len(post.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(post.Comments))
	}
	// newest first, with commenter snapshot
	if post.Comments[0].Text != "second" || post.Comments[0].Name != "B" {
		t.Fatalf("unexpected head comment: %+v", post.Comments[0])
	}

	// unknown comment id → 404
	w = env.do("DELETE", "/posts/comment/"+id+"/nope", "", tokA)
	if w.Code != 404 {
		t.Fatalf("remove unknown comment: %d %s", w.Code, w.Body.String())
	}

	// removal is post-scoped: A may remove B's comment
	w = env.do("DELETE", "/posts/comment/"+id+"/"+post.Comments[0].ID, "", tokA)
	if w.Code != 200 {
		t.Fatalf("remove comment: %d %s", w.Code, w.Body.String())
	}
	var comments []domain.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 || comments[0].Text != "first" {
		t.Fatalf("unexpected comments after removal: %+v", comments)
	}
}

func Test_Posts_PublicReads(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	tok := env.registerAndLogin("a@x.com", "secret1", "A")

	_ = env.do("POST", "/posts", `{"text":"one"}`, tok)
	time.Sleep(5 * time.Millisecond) // mongo datetimes have ms precision; keep the sort stable
	_ = env.do("POST", "/posts", `{"text":"two"}`, tok)

	w := env.do("GET", "/posts", "", "")
	if w.Code != 200 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var posts []domain.Post
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 || posts[0].Text != "two" {
		t.Fatalf("expected newest first, got %+v", posts)
	}

	// malformed id reads as not found
	if w = env.do("GET", "/posts/not-an-id", "", ""); w.Code != 404 {
		t.Fatalf("malformed id: %d", w.Code)
	}
}
