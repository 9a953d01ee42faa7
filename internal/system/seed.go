package system

import (
	"github.com/shopspring/decimal"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/service"
)

type seedAccount struct {
	username, password, firstName, lastName string
}

var defaultAccounts = []seedAccount{
	{"danieleriksson", "0000", "Daniel", "Eriksson"},
	{"tomaswigell", "5555", "Tomas", "Wigell"},
}

var demoMembers = []service.MemberInput{
	{FirstName: "Daniel", LastName: "Svensson", Phone: "0701234567", Email: "daniel.svensson@gmail.com", Tier: domain.MembershipTierStandard},
	{FirstName: "Erik", LastName: "Johansson", Phone: "0732345678", Email: "erik.johansson@gmail.com", Tier: domain.MembershipTierStudent},
	{FirstName: "Anders", LastName: "Karlsson", Phone: "0763456789", Email: "anders.karlsson@gmail.com", Tier: domain.MembershipTierPremium},
}

func base(name string, perDay, perHour int64, year int, color string) domain.ItemBase {
	return domain.ItemBase{
		Name:         name,
		PricePerDay:  decimal.NewFromInt(perDay),
		PricePerHour: decimal.NewFromInt(perHour),
		Status:       domain.ItemStatusAvailable,
		Year:         year,
		Color:        color,
	}
}

func camping(material string, weight float64, brand string) domain.CampingGear {
	return domain.CampingGear{Material: material, Weight: weight, Brand: brand}
}

func fishing(material string, weight float64, brand string) domain.FishingGear {
	return domain.FishingGear{Material: material, Weight: weight, Brand: brand}
}

func vessel(material string, weight float64, brand string, capacity int, length float64) domain.WaterVehicle {
	return domain.WaterVehicle{Material: material, Weight: weight, Brand: brand, Capacity: capacity, Length: length}
}

// demoCatalog is the inventory a fresh installation starts with. Ids are
// issued when the items are added.
func demoCatalog() []domain.Item {
	return []domain.Item{
		&domain.Backpack{ItemBase: base("Urban Daypack 25L", 150, 30, 2023, "BLACK"), CampingGear: camping("POLYESTER", 1.2, "Patagonia"), Volume: 25, BackpackType: "DAYPACK"},
		&domain.Backpack{ItemBase: base("Mountain Explorer 65L", 300, 60, 2024, "GREEN"), CampingGear: camping("NYLON", 2.5, "Fjällräven"), Volume: 65, BackpackType: "EXPEDITION"},
		&domain.Tent{ItemBase: base("Summer Breeze 2P", 250, 50, 2024, "YELLOW"), CampingGear: camping("NYLON", 2.5, "MSR"), Capacity: 2, SeasonRating: "SUMMER", TentType: "DOME"},
		&domain.Tent{ItemBase: base("Arctic Expedition 4P", 600, 120, 2023, "ORANGE"), CampingGear: camping("RIPSTOP_NYLON", 8.0, "Hilleberg"), Capacity: 4, SeasonRating: "WINTER", TentType: "TUNNEL"},
		&domain.Lantern{ItemBase: base("LED Battery Light Pro", 80, 15, 2024, "YELLOW"), CampingGear: camping("PLASTIC", 0.8, "Coleman"), Brightness: 500, PowerSource: "BATTERY"},
		&domain.SleepingBag{ItemBase: base("All Season Comfort", 180, 35, 2023, "GREEN"), CampingGear: camping("SYNTHETIC", 1.5, "Marmot"), TemperatureRating: 0, SeasonRating: "THREE_SEASON"},
		&domain.TrangiaKitchen{ItemBase: base("Trangia 25 Spirit", 150, 30, 2023, "SILVER"), CampingGear: camping("ALUMINUM", 1.2, "Trangia"), Burners: 2, FuelType: "ALCOHOL"},
		&domain.FishingRod{ItemBase: base("Shimano Spinning Pro", 200, 40, 2023, "BLACK"), FishingGear: fishing("CARBON_FIBER", 0.4, "Shimano"), RodLength: 2.1, RodType: "SPINNING"},
		&domain.FishingRod{ItemBase: base("Orvis Fly Master", 280, 55, 2024, "BROWN"), FishingGear: fishing("FIBERGLASS", 0.5, "Orvis"), RodLength: 2.7, RodType: "FLY"},
		&domain.FishingRod{ItemBase: base("Ice Fishing Special", 150, 30, 2023, "RED"), FishingGear: fishing("FIBERGLASS", 0.3, "Rapala"), RodLength: 0.9, RodType: "ICE"},
		&domain.FishingNet{ItemBase: base("Compact Travel Net", 80, 15, 2024, "BLUE"), FishingGear: fishing("NYLON", 0.8, "Frabill"), NetSize: "SMALL", MeshSize: 1.0},
		&domain.FishingNet{ItemBase: base("Trophy Catch Net", 180, 35, 2024, "BLACK"), FishingGear: fishing("NYLON", 1.8, "Savage Gear"), NetSize: "LARGE", MeshSize: 2.0},
		&domain.FishingBait{ItemBase: base("Pike Wobbler Pro", 40, 10, 2024, "MULTICOLOR"), FishingGear: fishing("PLASTIC", 0.15, "Rapala"), BaitType: "WOBBLER", Quantity: 5},
		&domain.Kayak{ItemBase: base("Ocean Pro Explorer", 850, 170, 2024, "RED"), WaterVehicle: vessel("FIBERGLASS", 28.0, "Hobie", 2, 4.5), Seats: 2, KayakType: "SIT_ON_TOP"},
		&domain.Kayak{ItemBase: base("Angler Pro", 950, 190, 2023, "CAMOUFLAGE"), WaterVehicle: vessel("PLASTIC", 32.0, "Old Town", 1, 3.8), Seats: 1, KayakType: "FISHING"},
		&domain.MotorBoat{
			ItemBase:     base("Speedster 2000", 2000, 400, 2024, "RED"),
			WaterVehicle: vessel("FIBERGLASS", 800, "Yamaha", 6, 6.5),
			BoatSpecs:    domain.BoatSpecs{HasFishFinder: true, MaxSpeed: 25},
			EnginePower:  150,
			FuelType:     "GASOLINE",
		},
		&domain.ElectricBoat{
			ItemBase:        base("Eco Cruiser Silent", 1200, 240, 2024, "WHITE"),
			WaterVehicle:    vessel("FIBERGLASS", 450, "Torqeedo", 4, 4.5),
			BoatSpecs:       domain.BoatSpecs{HasFishFinder: true, MaxSpeed: 8.0},
			BatteryCapacity: 50.0,
			ChargeTime:      6,
		},
		&domain.RowBoat{
			ItemBase:     base("Classic Wooden Fisher", 350, 70, 2023, "BROWN"),
			WaterVehicle: vessel("WOOD", 120, "Traditional Boats", 3, 4.0),
			BoatSpecs:    domain.BoatSpecs{HasFishFinder: true, MaxSpeed: 5.0},
			Oars:         2,
		},
	}
}
