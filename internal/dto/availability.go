package dto

// ── 校舎フィルタの指定値 ──

const (
	BuildingFilterAll   = "all"
	BuildingFilterTower = "tower"
	BuildingFilterMain  = "main"
)

// AvailabilityRequest 空き教室検索のクエリ
// day / period が未指定なら現在時刻（JST）から導出する。
type AvailabilityRequest struct {
	Day      string `form:"day"      binding:"omitempty,oneof=月 火 水 木 金 土 日"`
	Period   int    `form:"period"   binding:"omitempty,min=1,max=6"`
	Building string `form:"building" binding:"omitempty,oneof=all tower main"`
}

// RoomResponse 空き教室 1 件
type RoomResponse struct {
	Name     string `json:"name"`
	Building string `json:"building"`
}

// AvailabilityResponse 空き教室検索の結果
type AvailabilityResponse struct {
	Day      string         `json:"day"`
	Period   int            `json:"period"`
	Building string         `json:"building"`
	Count    int            `json:"count"`
	Rooms    []RoomResponse `json:"rooms"`
}
