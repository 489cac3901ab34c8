package dto

// ClassroomListRequest 教室一覧のクエリ
type ClassroomListRequest struct {
	Building string `form:"building" binding:"omitempty,oneof=all tower main"`
}

// ClassroomResponse 教室マスタ 1 件
type ClassroomResponse struct {
	Name     string `json:"name"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
}
