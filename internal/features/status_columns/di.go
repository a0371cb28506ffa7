package status_columns

var statusColumnRepository = &StatusColumnRepository{}
var statusColumnService = &StatusColumnService{
	statusColumnRepository,
}

func GetStatusColumnService() *StatusColumnService {
	return statusColumnService
}
