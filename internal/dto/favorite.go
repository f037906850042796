package dto

// AddFavoriteRequest お気に入り追加リクエスト（JSON API 用）
type AddFavoriteRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// BulkAddFavoritesRequest 一括追加リクエスト（JSON API 用）
// IDs はカンマ区切りの講義 ID 列。整数に解釈できないトークンは黙って捨てる
type BulkAddFavoritesRequest struct {
	IDs string `json:"ids"`
}

// BulkAddFavoritesResponse 一括追加の結果
// Processed は整形済み ID の件数（重複・既登録も数える）
type BulkAddFavoritesResponse struct {
	Processed int `json:"processed"`
}

// FavoriteListResponse お気に入り一覧
type FavoriteListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
}
