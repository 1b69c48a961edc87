package attendance

// RangeFilterQuery binds the /filter query string. Both bounds are
// inclusive calendar dates.
type RangeFilterQuery struct {
	FromDate string `form:"from_date" binding:"required"`
	ToDate   string `form:"to_date" binding:"required"`
}
