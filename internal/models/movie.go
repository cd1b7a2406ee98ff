package models

// Movie представляет фильм каталога.
//
// Poster — публичный URL постера в объектном хранилище,
// PosterID — ключ объекта, по которому постер можно удалить.
type Movie struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Genre    string `json:"genre"`
	Poster   string `json:"poster,omitempty"`
	PosterID string `json:"poster_id,omitempty"`
}

// MovieByGenre — проекция фильма для выборки по жанру.
type MovieByGenre struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// MovieByYear — проекция фильма для выборки по году.
type MovieByYear struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}
