package httpdto

// PageQuery holds the history query string. Size defaults to 50.
type PageQuery struct {
	Page int `form:"page,default=0"`
	Size int `form:"size,default=50"`
}
