package httpHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"roomhub/cache"
	"roomhub/handlers"
	"roomhub/repositories"
	"roomhub/services"
	"roomhub/usecases"
)

// newTestRouter wires the handlers onto a gin engine the same way the server
// does, backed by the in-memory repositories.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	userRepo := repositories.NewUserMemoryRepository()
	sessionRepo := repositories.NewSessionMemoryRepository(userRepo)
	sessionCache := cache.NewSessionCache()
	auth := usecases.NewAuthUseCase(userRepo, sessionRepo, sessionCache, time.Hour)
	auth.BcryptCost = bcrypt.MinCost
	rooms := usecases.NewRoomUseCase(repositories.NewRoomMemoryRepository(), repositories.NewTopicMemoryRepository())

	authHandler := NewAuthHandler(auth)
	roomHandler := NewRoomHandler(rooms)
	sessionAdminHandler := handlers.NewSessionAdminHandler(services.NewSessionSweeper(sessionRepo, sessionCache))

	r := gin.New()
	r.Use(CurrentUser(auth))

	r.GET("/", roomHandler.Home)
	r.GET("/room/:id", roomHandler.GetRoom)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)
	r.POST("/logout", authHandler.Logout)

	authed := r.Group("/", RequireLogin())
	{
		authed.GET("/room/new", roomHandler.NewRoomForm)
		authed.POST("/room/new", roomHandler.CreateRoom)
		authed.GET("/room/:id/update", roomHandler.EditRoomForm)
		authed.POST("/room/:id/update", roomHandler.UpdateRoom)
		authed.GET("/room/:id/delete", roomHandler.ConfirmDeleteRoom)
		authed.POST("/room/:id/delete", roomHandler.DeleteRoom)

		authed.GET("/sessions/stats", sessionAdminHandler.Stats)
		authed.POST("/sessions/sweep", sessionAdminHandler.Sweep)
	}

	return r
}

func do(router *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	w := do(router, http.MethodPost, "/register", url.Values{
		"username": {username},
		"password": {"sw0rdfish!"},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func createRoom(t *testing.T, router *gin.Engine, cookies []*http.Cookie, name, topic string) string {
	t.Helper()
	w := do(router, http.MethodPost, "/room/new", url.Values{
		"name":        {name},
		"topic":       {topic},
		"description": {"a place to talk"},
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Room struct {
			ID string `json:"id"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Room.ID)
	return body.Room.ID
}

func Test_Anonymous_Room_Creation_Redirects_To_Login(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := do(router, method, "/room/new", nil, nil)
		req.Equal(http.StatusFound, w.Code)
		req.Equal("/login", w.Header().Get("Location"))
	}
}

func Test_Login_Failure_Shows_Message_Without_Redirect(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()
	registerUser(t, router, "alice")

	w := do(router, http.MethodPost, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong-password"},
	}, nil)
	req.Equal(http.StatusUnauthorized, w.Code)
	req.Empty(w.Header().Get("Location"))
	req.Contains(w.Body.String(), "incorrect")

	// Unknown usernames fail the same way
	w = do(router, http.MethodPost, "/login", url.Values{
		"username": {"nobody"},
		"password": {"whatever-pass"},
	}, nil)
	req.Equal(http.StatusUnauthorized, w.Code)
}

func Test_Login_Form_Redirects_Home_When_Authenticated(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()
	cookies := registerUser(t, router, "alice")

	w := do(router, http.MethodGet, "/login", nil, cookies)
	req.Equal(http.StatusFound, w.Code)
	req.Equal("/", w.Header().Get("Location"))
}

func Test_Logout_Then_Protected_Route_Redirects(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()
	cookies := registerUser(t, router, "alice")

	w := do(router, http.MethodGet, "/logout", nil, cookies)
	req.Equal(http.StatusFound, w.Code)
	req.Equal("/", w.Header().Get("Location"))

	// The old cookie no longer authenticates
	w = do(router, http.MethodGet, "/room/new", nil, cookies)
	req.Equal(http.StatusFound, w.Code)
	req.Equal("/login", w.Header().Get("Location"))
}

func Test_Non_Host_Update_Gets_Plain_Text_Denial(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	hostCookies := registerUser(t, router, "alice")
	roomID := createRoom(t, router, hostCookies, "Learn Python", "Python")

	intruderCookies := registerUser(t, router, "mallory")

	w := do(router, http.MethodPost, "/room/"+roomID+"/update", url.Values{
		"name":  {"Hijacked"},
		"topic": {"Evil"},
	}, intruderCookies)
	req.Equal(http.StatusForbidden, w.Code)
	req.Equal(usecases.ErrNotHost.Error(), w.Body.String())

	// The edit form is denied the same way, before anything is shown
	w = do(router, http.MethodGet, "/room/"+roomID+"/update", nil, intruderCookies)
	req.Equal(http.StatusForbidden, w.Code)

	// Room is untouched
	w = do(router, http.MethodGet, "/room/"+roomID, nil, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "Learn Python")
	req.NotContains(w.Body.String(), "Hijacked")
}

func Test_Host_Update_Persists_Mutable_Fields(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	cookies := registerUser(t, router, "alice")
	roomID := createRoom(t, router, cookies, "Learn Python", "Python")

	w := do(router, http.MethodPost, "/room/"+roomID+"/update", url.Values{
		"name":        {"Advanced Python"},
		"topic":       {"Python"},
		"description": {"decorators and descriptors"},
	}, cookies)
	req.Equal(http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/room/"+roomID, nil, nil)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "Advanced Python")
	req.Contains(w.Body.String(), "decorators")
}

func Test_Delete_Requires_Confirmation_Round_Trip(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	cookies := registerUser(t, router, "alice")
	roomID := createRoom(t, router, cookies, "Learn Python", "Python")

	// First request: confirmation view only, nothing removed
	w := do(router, http.MethodGet, "/room/"+roomID+"/delete", nil, cookies)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "confirm")

	w = do(router, http.MethodGet, "/room/"+roomID, nil, nil)
	req.Equal(http.StatusOK, w.Code, "confirmation view must not delete the room")

	// Confirmed follow-up removes the record
	w = do(router, http.MethodPost, "/room/"+roomID+"/delete", nil, cookies)
	req.Equal(http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/room/"+roomID, nil, nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func Test_Non_Host_Delete_Is_Denied(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	hostCookies := registerUser(t, router, "alice")
	roomID := createRoom(t, router, hostCookies, "Learn Python", "Python")
	intruderCookies := registerUser(t, router, "mallory")

	w := do(router, http.MethodPost, "/room/"+roomID+"/delete", nil, intruderCookies)
	req.Equal(http.StatusForbidden, w.Code)
	req.Equal(usecases.ErrNotHost.Error(), w.Body.String())

	w = do(router, http.MethodGet, "/room/"+roomID, nil, nil)
	req.Equal(http.StatusOK, w.Code)
}

func Test_Home_Search_Filters_And_Counts(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	cookies := registerUser(t, router, "alice")
	createRoom(t, router, cookies, "Learn Python", "Python")
	createRoom(t, router, cookies, "X", "Design")

	var body struct {
		RoomCount int64 `json:"room_count"`
		Rooms     []struct {
			Name string `json:"name"`
		} `json:"rooms"`
	}

	w := do(router, http.MethodGet, "/", nil, nil)
	req.Equal(http.StatusOK, w.Code)
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.EqualValues(2, body.RoomCount)

	w = do(router, http.MethodGet, "/?q=py", nil, nil)
	req.Equal(http.StatusOK, w.Code)
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.EqualValues(1, body.RoomCount)
	req.Len(body.Rooms, 1)
	req.Equal("Learn Python", body.Rooms[0].Name)

	w = do(router, http.MethodGet, "/room/no-such-id", nil, nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func Test_Create_Room_Validation_Echoes_Form(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()
	cookies := registerUser(t, router, "alice")

	w := do(router, http.MethodPost, "/room/new", url.Values{
		"name":        {""},
		"topic":       {"Python"},
		"description": {"kept for re-render"},
	}, cookies)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Contains(w.Body.String(), "kept for re-render")

	// Nothing was created
	var body struct {
		RoomCount int64 `json:"room_count"`
	}
	home := do(router, http.MethodGet, "/", nil, nil)
	req.NoError(json.Unmarshal(home.Body.Bytes(), &body))
	req.Zero(body.RoomCount)
}

func Test_Session_Admin_Endpoints_Require_Login(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()

	w := do(router, http.MethodGet, "/sessions/stats", nil, nil)
	req.Equal(http.StatusFound, w.Code)
	req.Equal("/login", w.Header().Get("Location"))

	w = do(router, http.MethodPost, "/sessions/sweep", nil, nil)
	req.Equal(http.StatusFound, w.Code)

	// Any authenticated user may read the counters and trigger a sweep
	cookies := registerUser(t, router, "alice")
	w = do(router, http.MethodGet, "/sessions/stats", nil, cookies)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "cached_sessions")

	w = do(router, http.MethodPost, "/sessions/sweep", nil, cookies)
	req.Equal(http.StatusOK, w.Code)
}

func Test_Register_Duplicate_Case_Variant_Rejected(t *testing.T) {
	req := require.New(t)
	router := newTestRouter()
	registerUser(t, router, "alice")

	w := do(router, http.MethodPost, "/register", url.Values{
		"username": {"ALICE"},
		"password": {"sw0rdfish!"},
	}, nil)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Contains(w.Body.String(), "taken")
}
