package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedGame is a game with its packages, inserted when the catalog is empty
type SeedGame struct {
	Name        string
	DisplayName string
	Currency    string
	Icon        string
	Packages    []SeedPackage
}

type SeedPackage struct {
	Name   string
	Amount int
	Price  decimal.Decimal
}

func tiers(currency string, pairs ...int64) []SeedPackage {
	out := make([]SeedPackage, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, SeedPackage{
			Name:   fmt.Sprintf("%d %s", pairs[i], currency),
			Amount: int(pairs[i]),
			Price:  decimal.NewFromInt(pairs[i+1]),
		})
	}
	return out
}

// DefaultGames is the starter catalog: amount/price pairs per game
var DefaultGames = []SeedGame{
	{Name: "freefire", DisplayName: "Free Fire", Currency: "Diamonds", Icon: "fas fa-fire",
		Packages: tiers("Diamonds", 100, 80, 310, 250, 520, 400)},
	{Name: "pubg", DisplayName: "PUBG Mobile", Currency: "UC", Icon: "fas fa-crosshairs",
		Packages: tiers("UC", 60, 75, 325, 390, 660, 780)},
	{Name: "mobilelegends", DisplayName: "Mobile Legends", Currency: "Diamonds", Icon: "fas fa-shield-alt",
		Packages: tiers("Diamonds", 86, 85, 172, 170, 257, 255)},
	{Name: "minecraft", DisplayName: "Minecraft", Currency: "Minecoins", Icon: "fas fa-cube",
		Packages: tiers("Minecoins", 320, 250, 1020, 780, 1720, 1300)},
	{Name: "valorant", DisplayName: "Valorant", Currency: "VP", Icon: "fas fa-bullseye",
		Packages: tiers("VP", 475, 390, 1000, 780, 2050, 1560)},
	{Name: "roblox", DisplayName: "Roblox", Currency: "Robux", Icon: "fas fa-shapes",
		Packages: tiers("Robux", 400, 320, 800, 640, 1700, 1300)},
}
