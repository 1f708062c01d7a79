package constvars

const (
	URLParamPatientID = "patient_id"
)

const (
	URLQueryParamSortBy = "sort_by"
	URLQueryParamOrder  = "order"
)

const (
	SortFieldHeight = "height"
	SortFieldWeight = "weight"
	SortFieldBMI    = "bmi"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)
