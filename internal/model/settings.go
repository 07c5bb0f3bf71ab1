package model

// Settings — общие настройки приложения, единственная строка (id=1).
type Settings struct {
	ID                  int64  `json:"id"`
	AdminID             int64  `json:"admin_id"`
	PlanningHorizonDays int    `json:"planning_horizon_days"`
	Timezone            string `json:"timezone"`
}
