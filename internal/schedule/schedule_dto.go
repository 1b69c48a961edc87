package schedule

type RangeFilterQuery struct {
	FromDate string `form:"from_date" binding:"required"`
	ToDate   string `form:"to_date" binding:"required"`
}
