package dataframe

// collectionTask is a task which bounds the number of Rows collected at the end of a plan
type collectionTask interface {
	GetCollectionLimit() int64
}
