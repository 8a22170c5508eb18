package auth

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserPublic struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Credits int64  `json:"credits"`
}

// GalleryItem — краткая информация об изображении для профиля
type GalleryItem struct {
	ID        string `json:"id"`
	Theme     string `json:"theme"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

// ProfileResponse расширенный ответ для профиля
type ProfileResponse struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Credits   int64         `json:"credits"`
	CreatedAt string        `json:"created_at"`
	Gallery   []GalleryItem `json:"gallery"`
}
