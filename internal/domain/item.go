package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusRented    ItemStatus = "RENTED"
	ItemStatusBroken    ItemStatus = "BROKEN"
)

// ItemKind identifies the concrete item variant. The value doubles as the
// "type" discriminator of persisted item records.
type ItemKind string

const (
	ItemKindTent         ItemKind = "Tent"
	ItemKindBackpack     ItemKind = "Backpack"
	ItemKindSleepingBag  ItemKind = "SleepingBag"
	ItemKindTrangia      ItemKind = "Trangia"
	ItemKindLantern      ItemKind = "Lantern"
	ItemKindRod          ItemKind = "Rod"
	ItemKindNet          ItemKind = "Net"
	ItemKindBait         ItemKind = "Bait"
	ItemKindKayak        ItemKind = "Kayak"
	ItemKindMotorBoat    ItemKind = "MotorBoat"
	ItemKindElectricBoat ItemKind = "ElectricBoat"
	ItemKindRowBoat      ItemKind = "RowBoat"
)

var itemIDPrefixes = map[ItemKind]string{
	ItemKindTent:         "TENT-",
	ItemKindBackpack:     "BACK-",
	ItemKindSleepingBag:  "SLEEP-",
	ItemKindTrangia:      "TRANG-",
	ItemKindLantern:      "LANT-",
	ItemKindRod:          "ROD-",
	ItemKindNet:          "NET-",
	ItemKindBait:         "BAIT-",
	ItemKindKayak:        "KAY-",
	ItemKindMotorBoat:    "MBOAT-",
	ItemKindElectricBoat: "EBOAT-",
	ItemKindRowBoat:      "RBOAT-",
}

// ItemKinds lists every item variant in catalog order.
func ItemKinds() []ItemKind {
	return []ItemKind{
		ItemKindBackpack, ItemKindTent, ItemKindLantern, ItemKindSleepingBag, ItemKindTrangia,
		ItemKindRod, ItemKindNet, ItemKindBait,
		ItemKindKayak, ItemKindMotorBoat, ItemKindElectricBoat, ItemKindRowBoat,
	}
}

// IDPrefix returns the identifier prefix used for items of this kind.
func (k ItemKind) IDPrefix() string {
	return itemIDPrefixes[k]
}

func (k ItemKind) Valid() bool {
	_, ok := itemIDPrefixes[k]
	return ok
}

// ItemBase holds the fields shared by every item variant.
type ItemBase struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerDay  decimal.Decimal `json:"pricePerDay"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Status       ItemStatus      `json:"status"`
	Year         int             `json:"year"`
	Color        string          `json:"color"`
}

func (b *ItemBase) Base() *ItemBase { return b }

func (b *ItemBase) IsAvailable() bool { return b.Status == ItemStatusAvailable }

// Item is the closed set of rentable variants. Only types in this package
// implement it.
type Item interface {
	Base() *ItemBase
	Kind() ItemKind
	sealed()
}

// CampingGear and FishingGear carry the shared equipment attributes.
type CampingGear struct {
	Material string  `json:"material"`
	Weight   float64 `json:"weight"`
	Brand    string  `json:"brand"`
}

type FishingGear struct {
	Material string  `json:"material"`
	Weight   float64 `json:"weight"`
	Brand    string  `json:"brand"`
}

type WaterVehicle struct {
	Material string  `json:"material"`
	Weight   float64 `json:"weight"`
	Brand    string  `json:"brand"`
	Capacity int     `json:"capacity"`
	Length   float64 `json:"length"`
}

type BoatSpecs struct {
	HasFishFinder bool    `json:"hasFishFinder"`
	MaxSpeed      float64 `json:"maxSpeed"`
}

type Tent struct {
	ItemBase
	CampingGear
	Capacity     int    `json:"capacity"`
	SeasonRating string `json:"seasonRating"`
	TentType     string `json:"tentType"`
}

type Backpack struct {
	ItemBase
	CampingGear
	Volume       int    `json:"volume"`
	BackpackType string `json:"backpackType"`
}

type SleepingBag struct {
	ItemBase
	CampingGear
	TemperatureRating float64 `json:"temperatureRating"`
	SeasonRating      string  `json:"seasonRating"`
}

type TrangiaKitchen struct {
	ItemBase
	CampingGear
	Burners  int    `json:"burners"`
	FuelType string `json:"fuelType"`
}

type Lantern struct {
	ItemBase
	CampingGear
	Brightness  int    `json:"brightness"`
	PowerSource string `json:"powerSource"`
}

type FishingRod struct {
	ItemBase
	FishingGear
	RodLength float64 `json:"rodLength"`
	RodType   string  `json:"rodType"`
}

type FishingNet struct {
	ItemBase
	FishingGear
	NetSize  string  `json:"netSize"`
	MeshSize float64 `json:"meshSize"`
}

type FishingBait struct {
	ItemBase
	FishingGear
	BaitType string `json:"baitType"`
	Quantity int    `json:"quantity"`
}

type Kayak struct {
	ItemBase
	WaterVehicle
	Seats     int    `json:"seats"`
	KayakType string `json:"kayakType"`
}

type MotorBoat struct {
	ItemBase
	WaterVehicle
	BoatSpecs
	EnginePower int    `json:"enginePower"`
	FuelType    string `json:"fuelType"`
}

type ElectricBoat struct {
	ItemBase
	WaterVehicle
	BoatSpecs
	BatteryCapacity float64 `json:"batteryCapacity"`
	ChargeTime      int     `json:"chargeTime"`
}

type RowBoat struct {
	ItemBase
	WaterVehicle
	BoatSpecs
	Oars int `json:"oars"`
}

func (*Tent) Kind() ItemKind           { return ItemKindTent }
func (*Backpack) Kind() ItemKind       { return ItemKindBackpack }
func (*SleepingBag) Kind() ItemKind    { return ItemKindSleepingBag }
func (*TrangiaKitchen) Kind() ItemKind { return ItemKindTrangia }
func (*Lantern) Kind() ItemKind        { return ItemKindLantern }
func (*FishingRod) Kind() ItemKind     { return ItemKindRod }
func (*FishingNet) Kind() ItemKind     { return ItemKindNet }
func (*FishingBait) Kind() ItemKind    { return ItemKindBait }
func (*Kayak) Kind() ItemKind          { return ItemKindKayak }
func (*MotorBoat) Kind() ItemKind      { return ItemKindMotorBoat }
func (*ElectricBoat) Kind() ItemKind   { return ItemKindElectricBoat }
func (*RowBoat) Kind() ItemKind        { return ItemKindRowBoat }

func (*Tent) sealed()           {}
func (*Backpack) sealed()       {}
func (*SleepingBag) sealed()    {}
func (*TrangiaKitchen) sealed() {}
func (*Lantern) sealed()        {}
func (*FishingRod) sealed()     {}
func (*FishingNet) sealed()     {}
func (*FishingBait) sealed()    {}
func (*Kayak) sealed()          {}
func (*MotorBoat) sealed()      {}
func (*ElectricBoat) sealed()   {}
func (*RowBoat) sealed()        {}

// NewItem returns an empty item of the given kind, ready to be decoded into.
func NewItem(kind ItemKind) (Item, error) {
	switch kind {
	case ItemKindTent:
		return &Tent{}, nil
	case ItemKindBackpack:
		return &Backpack{}, nil
	case ItemKindSleepingBag:
		return &SleepingBag{}, nil
	case ItemKindTrangia:
		return &TrangiaKitchen{}, nil
	case ItemKindLantern:
		return &Lantern{}, nil
	case ItemKindRod:
		return &FishingRod{}, nil
	case ItemKindNet:
		return &FishingNet{}, nil
	case ItemKindBait:
		return &FishingBait{}, nil
	case ItemKindKayak:
		return &Kayak{}, nil
	case ItemKindMotorBoat:
		return &MotorBoat{}, nil
	case ItemKindElectricBoat:
		return &ElectricBoat{}, nil
	case ItemKindRowBoat:
		return &RowBoat{}, nil
	}
	return nil, fmt.Errorf("unknown item type %q", kind)
}

// CloneItem returns a copy of item that shares no mutable state with it.
func CloneItem(item Item) Item {
	switch v := item.(type) {
	case *Tent:
		c := *v
		return &c
	case *Backpack:
		c := *v
		return &c
	case *SleepingBag:
		c := *v
		return &c
	case *TrangiaKitchen:
		c := *v
		return &c
	case *Lantern:
		c := *v
		return &c
	case *FishingRod:
		c := *v
		return &c
	case *FishingNet:
		c := *v
		return &c
	case *FishingBait:
		c := *v
		return &c
	case *Kayak:
		c := *v
		return &c
	case *MotorBoat:
		c := *v
		return &c
	case *ElectricBoat:
		c := *v
		return &c
	case *RowBoat:
		c := *v
		return &c
	}
	return nil
}

// Category groups item kinds the way the catalog is browsed.
func Category(item Item) string {
	switch item.(type) {
	case *Tent, *Backpack, *SleepingBag, *TrangiaKitchen, *Lantern:
		return "camping"
	case *FishingRod, *FishingNet, *FishingBait:
		return "fishing"
	case *Kayak, *MotorBoat, *ElectricBoat, *RowBoat:
		return "water_vehicle"
	}
	return "unknown"
}
