// Package moviecatalog собирает приложение каталога фильмов и его маршруты.
package moviecatalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/andrianprakoso/movie-catalog/docs"
	moviebygenre "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/bygenre"
	moviebyyear "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/byyear"
	moviecreate "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/create"
	movielist "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/list"
	movieread "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/read"
	movieremove "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/remove"
	movieupdate "github.com/andrianprakoso/movie-catalog/internal/http/handlers/movie/update"
	userforgot "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/forgot"
	userlist "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/list"
	userlogin "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/login"
	userpassword "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/password"
	userprofile "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/profile"
	userregister "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/register"
	userremove "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/remove"
	userreset "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/reset"
	userrole "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/role"
	userverify "github.com/andrianprakoso/movie-catalog/internal/http/handlers/user/verify"
	"github.com/andrianprakoso/movie-catalog/internal/http/middlewarectx"
	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/jwt"
	movieservice "github.com/andrianprakoso/movie-catalog/internal/services/movie"
	userservice "github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokens jwt.Maker, userService *userservice.Service, movieService *movieservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/user", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", userregister.New(logger, userService).ServeHTTP)
		r.Get("/verify/{username}", userverify.New(logger, userService).ServeHTTP)
		r.Post("/login", userlogin.New(logger, userService).ServeHTTP)
		r.Post("/forgot", userforgot.New(logger, userService).ServeHTTP)
		r.Get("/forgot/{username}/{code}", userreset.New(logger, userService).ServeHTTP)

		// Группа с аутентификацией по токену
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Put("/password", userpassword.New(logger, userService).ServeHTTP)
			r.Get("/view/{username}", userprofile.New(logger, userService).ServeHTTP)

			// Административные операции
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/all-user", userlist.New(logger, userService).ServeHTTP)
				r.Put("/role/{username}", userrole.New(logger, userService).ServeHTTP)
				r.Delete("/delete/{username}", userremove.New(logger, userService).ServeHTTP)
			})
		})
	})

	r.Route("/movies", func(r chi.Router) {
		// Публичные выборки: карточка фильма и срезы по жанру и году
		r.Get("/{id}", movieread.New(logger, movieService).ServeHTTP)
		r.Get("/genre/{genre}", moviebygenre.New(logger, movieService).ServeHTTP)
		r.Get("/year/{year}/{beforeafter}", moviebyyear.New(logger, movieService).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/", movielist.New(logger, movieService).ServeHTTP)

			// Изменение каталога доступно только администратору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/", moviecreate.New(logger, movieService).ServeHTTP)
				r.Put("/{id}", movieupdate.New(logger, movieService).ServeHTTP)
				r.Delete("/{id}", movieremove.New(logger, movieService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "resource not found"))
	})
}
