// internal/catalog/data.go
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/soundwave/internal/models"
)

func usd(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func was(v string) *decimal.Decimal {
	d := usd(v)
	return &d
}

var categoryInfo = []models.CategoryInfo{
	{ID: models.CategoryAll, Name: "All Products", Icon: "music"},
	{
		ID:          string(models.CategoryInstruments),
		Name:        "Instruments",
		Icon:        "guitar",
		Description: "Electric and acoustic guitars, keyboards, synthesizers, and more professional instruments for musicians of all levels.",
	},
	{
		ID:          string(models.CategoryStudioGear),
		Name:        "Studio Gear",
		Icon:        "mic",
		Description: "Professional recording equipment including microphones, audio interfaces, monitors, and turntables for your studio setup.",
	},
	{
		ID:          string(models.CategoryAccessories),
		Name:        "Accessories",
		Icon:        "headphones",
		Description: "High-quality headphones, speakers, cables, and essential accessories to complete your music experience.",
	},
	{
		ID:          string(models.CategoryVinyl),
		Name:        "Vinyl Records",
		Icon:        "disc",
		Description: "Classic albums and new releases on premium vinyl. Experience music the way it was meant to be heard.",
	},
}

// products is the compiled-in storefront dataset.
var products = []models.Product{
	{
		ID:            "1",
		Name:          "Fender Stratocaster Electric Guitar",
		Description:   "The iconic Fender Stratocaster delivers the bright, bell-like tone that has defined rock music for decades. Features alder body, maple neck, and three single-coil pickups for versatile sound options.",
		Price:         usd("1299.99"),
		OriginalPrice: was("1499.99"),
		Category:      models.CategoryInstruments,
		Image:         "https://images.unsplash.com/photo-1564186763535-ebb21ef5277f?w=600",
		Images: []string{
			"https://images.unsplash.com/photo-1564186763535-ebb21ef5277f?w=600",
			"https://images.unsplash.com/photo-1550985616-10810253b84d?w=600",
		},
		Rating:     4.8,
		Reviews:    234,
		InStock:    true,
		Featured:   true,
		BestSeller: true,
	},
	{
		ID:          "2",
		Name:        "Sony WH-1000XM5 Headphones",
		Description: "Industry-leading noise cancellation with two processors controlling 8 microphones. Exceptional sound quality with 30-hour battery life and crystal-clear hands-free calling.",
		Price:       usd("349.99"),
		Category:    models.CategoryAccessories,
		Image:       "https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=600",
		Images: []string{
			"https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=600",
			"https://images.unsplash.com/photo-1583394838336-acd977736f90?w=600",
		},
		Rating:   4.9,
		Reviews:  1567,
		InStock:  true,
		Featured: true,
	},
	{
		ID:            "3",
		Name:          "Roland JUNO-DS88 Synthesizer",
		Description:   "Professional 88-key weighted synthesizer with extensive sound library, real-time controls, and powerful effects. Perfect for stage and studio performances.",
		Price:         usd("1599.99"),
		OriginalPrice: was("1799.99"),
		Category:      models.CategoryInstruments,
		Image:         "https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?w=600",
		Images:        []string{"https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?w=600"},
		Rating:        4.7,
		Reviews:       89,
		InStock:       true,
		BestSeller:    true,
	},
	{
		ID:          "4",
		Name:        "Shure SM7B Microphone",
		Description: "The legendary broadcast microphone used by professionals worldwide. Delivers warm, smooth vocal reproduction with excellent rejection of electromagnetic hum.",
		Price:       usd("399.00"),
		Category:    models.CategoryStudioGear,
		Image:       "https://images.unsplash.com/photo-1598550476439-6847785fcea6?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1598550476439-6847785fcea6?w=600"},
		Rating:      4.9,
		Reviews:     2341,
		InStock:     true,
		Featured:    true,
		BestSeller:  true,
	},
	{
		ID:          "5",
		Name:        "JBL Flip 6 Portable Speaker",
		Description: "Bold JBL Original Pro Sound with punchy bass. IP67 waterproof and dustproof design with 12 hours of playtime. PartyBoost compatible.",
		Price:       usd("129.99"),
		Category:    models.CategoryAccessories,
		Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=600"},
		Rating:      4.6,
		Reviews:     892,
		InStock:     true,
	},
	{
		ID:          "6",
		Name:        "Pink Floyd - The Dark Side of the Moon (Vinyl)",
		Description: "50th Anniversary remastered edition on 180g vinyl. Experience this masterpiece as it was meant to be heard with pristine analog warmth.",
		Price:       usd("34.99"),
		Category:    models.CategoryVinyl,
		Image:       "https://images.unsplash.com/photo-1539375665275-f9de415ef9ac?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1539375665275-f9de415ef9ac?w=600"},
		Rating:      5.0,
		Reviews:     456,
		InStock:     true,
		Featured:    true,
	},
	{
		ID:            "7",
		Name:          "Audio-Technica AT-LP120X Turntable",
		Description:   "Direct-drive professional turntable with USB output. Features adjustable dynamic anti-skate control and selectable phono preamp.",
		Price:         usd("279.00"),
		OriginalPrice: was("329.00"),
		Category:      models.CategoryStudioGear,
		Image:         "https://images.unsplash.com/photo-1545454675-3531b543be5d?w=600",
		Images:        []string{"https://images.unsplash.com/photo-1545454675-3531b543be5d?w=600"},
		Rating:        4.8,
		Reviews:       678,
		InStock:       true,
		BestSeller:    true,
	},
	{
		ID:          "8",
		Name:        "Yamaha HS8 Studio Monitors (Pair)",
		Description: "8-inch powered studio monitors delivering flat, accurate response. Room control and high trim response for optimal placement flexibility.",
		Price:       usd("698.00"),
		Category:    models.CategoryStudioGear,
		Image:       "https://images.unsplash.com/photo-1545454675-3531b543be5d?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1545454675-3531b543be5d?w=600"},
		Rating:      4.7,
		Reviews:     312,
		InStock:     true,
	},
	{
		ID:          "9",
		Name:        "Daft Punk - Random Access Memories (Vinyl)",
		Description: "Grammy-winning album on double 180g vinyl. Features 'Get Lucky' and 'Instant Crush'. Gatefold sleeve with exclusive artwork.",
		Price:       usd("39.99"),
		Category:    models.CategoryVinyl,
		Image:       "https://images.unsplash.com/photo-1603048588665-791ca8aea617?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1603048588665-791ca8aea617?w=600"},
		Rating:      4.9,
		Reviews:     234,
		InStock:     true,
	},
	{
		ID:          "10",
		Name:        "Focusrite Scarlett 2i2 Audio Interface",
		Description: "Third generation USB audio interface with two award-winning Scarlett mic preamps. Air mode for brighter, more open recordings.",
		Price:       usd("179.99"),
		Category:    models.CategoryStudioGear,
		Image:       "https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?w=600"},
		Rating:      4.8,
		Reviews:     1823,
		InStock:     true,
		BestSeller:  true,
	},
	{
		ID:          "11",
		Name:        "Gibson Les Paul Standard '50s",
		Description: "The gold standard of electric guitars. Mahogany body, maple top, Burstbucker pickups deliver that legendary Les Paul tone.",
		Price:       usd("2499.00"),
		Category:    models.CategoryInstruments,
		Image:       "https://images.unsplash.com/photo-1510915361894-db8b60106cb1?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1510915361894-db8b60106cb1?w=600"},
		Rating:      4.9,
		Reviews:     156,
		InStock:     true,
		Featured:    true,
	},
	{
		ID:            "12",
		Name:          "AKG K712 Pro Studio Headphones",
		Description:   "Reference open-back headphones with flat frequency response. Designed for precision listening in mixing and mastering environments.",
		Price:         usd("349.00"),
		OriginalPrice: was("399.00"),
		Category:      models.CategoryStudioGear,
		Image:         "https://images.unsplash.com/photo-1484704849700-f032a568e944?w=600",
		Images:        []string{"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=600"},
		Rating:        4.7,
		Reviews:       423,
		InStock:       true,
	},
	{
		ID:          "13",
		Name:        "Kendrick Lamar - To Pimp A Butterfly (Vinyl)",
		Description: "Critically acclaimed album on double vinyl. A groundbreaking fusion of jazz, funk, and hip-hop that redefined the genre.",
		Price:       usd("44.99"),
		Category:    models.CategoryVinyl,
		Image:       "https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?w=600"},
		Rating:      4.8,
		Reviews:     189,
		InStock:     true,
	},
	{
		ID:          "14",
		Name:        "MIDI Keyboard Controller - Novation Launchkey 49",
		Description: "49-key USB MIDI controller with velocity-sensitive pads, faders, and knobs. Deep integration with Ableton Live and other DAWs.",
		Price:       usd("199.99"),
		Category:    models.CategoryInstruments,
		Image:       "https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1598488035139-bdbb2231ce04?w=600"},
		Rating:      4.6,
		Reviews:     567,
		InStock:     true,
	},
	{
		ID:          "15",
		Name:        "Premium Guitar Cable Set (3-Pack)",
		Description: "Professional-grade instrument cables with gold-plated connectors. Includes 10ft, 15ft, and 20ft lengths. Lifetime warranty.",
		Price:       usd("49.99"),
		Category:    models.CategoryAccessories,
		Image:       "https://images.unsplash.com/photo-1558098329-a11cff621064?w=600",
		Images:      []string{"https://images.unsplash.com/photo-1558098329-a11cff621064?w=600"},
		Rating:      4.5,
		Reviews:     234,
		InStock:     true,
	},
}
