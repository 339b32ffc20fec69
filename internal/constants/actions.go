package constants

const (
	Create      = "CREATE"
	Update      = "UPDATE"
	Delete      = "DELETE"
	UpdatePrice = "UPDATE_PRICE"
	CreateIndex = "CREATE_INDEX"
	Seed        = "SEED"
	SystemActor = "system"
)
