package catalog

import "togetherbikes/internal/domain"

var companyInfo = domain.CompanyInfo{
	Name:         "Euro Code 1 Ltd.",
	RegistryID:   "203949089",
	Address:      "Varna, 12 Bratya Shkorpil St.",
	Phone:        "088 285 8774",
	PhoneBooking: "+359 88 831 0500",
	Email:        "info@2getherbikes.bg",
	StoreHours:   "10:30 - 19:00",
	SupportHours: "Mon-Fri 9:30 - 18:00",
	Location:     "125 8-mi Primorski Polk Blvd.",
}

var deliveryRules = domain.DeliveryRules{
	Partner:       "ECONT",
	CostOffice:    7.50,
	CostAddress:   12.00,
	FreeThreshold: 49.90,
	DeliveryDays:  "3-5",
}

var services = []domain.ServiceItem{
	{ID: "s1", Name: "Cable replacement", Price: 20, Description: "Removal of the old cable and housing, fitting of new ones."},
	{ID: "s2", Name: "Wheel truing", Price: 15, Description: "Precise correction of radial and lateral deviations."},
	{ID: "s3", Name: "Full overhaul", Price: 60, Description: "Complete disassembly, cleaning and lubrication of the bike."},
	{ID: "s4", Name: "Crankset replacement", Price: 25, Description: "Includes bottom bracket inspection."},
	{ID: "s5", Name: "Hydraulic brake bleeding", Price: 25, Description: "Per brake. Brake fluid included."},
	{ID: "s6", Name: "Internal cable routing", Price: 35, Description: "Routing a cable or housing through the frame."},
}

var rentalPlans = []domain.RentalPlan{
	{
		ID:          "rent-city",
		Name:        "City bike",
		Description: "Comfortable aluminium city bike with fenders and a rack.",
		Tiers: []domain.RentalTier{
			{Duration: "1 hour", Price: 8},
			{Duration: "4 hours", Price: 20},
			{Duration: "1 day", Price: 35},
		},
	},
	{
		ID:          "rent-mtb",
		Name:        "Hardtail MTB",
		Description: "Trail-ready hardtail with hydraulic disc brakes.",
		Tiers: []domain.RentalTier{
			{Duration: "4 hours", Price: 30},
			{Duration: "1 day", Price: 50},
			{Duration: "weekend", Price: 85},
		},
	},
	{
		ID:          "rent-ebike",
		Name:        "E-bike",
		Description: "Mid-drive electric bike, up to 120 km of assisted range.",
		Tiers: []domain.RentalTier{
			{Duration: "4 hours", Price: 45},
			{Duration: "1 day", Price: 75},
		},
	},
}

var tourPackages = []domain.TourPackage{
	{
		ID:          "tour-liman",
		Name:        "Liman Ridge Traverse",
		Description: "A half-day guided ride along the coastal ridge singletrack north of the city. Flowing descents, sea views and a coffee stop at the lighthouse.",
		Prices: []domain.RentalTier{
			{Duration: "rider with own bike", Price: 60},
			{Duration: "rider with rental MTB", Price: 95},
		},
		Suitability: "Intermediate riders comfortable on singletrack",
		Image:       "https://2getherbikes.bg/image/tours/liman-ridge.jpg",
	},
	{
		ID:          "tour-batova",
		Name:        "Batova Forest Enduro Day",
		Description: "Full-day shuttle-assisted enduro riding in the Batova valley. Six descents, picnic lunch included, support vehicle on route.",
		Prices: []domain.RentalTier{
			{Duration: "rider with own bike", Price: 120},
			{Duration: "rider with rental enduro bike", Price: 190},
		},
		Suitability: "Advanced riders, full-face helmet required",
		Image:       "https://2getherbikes.bg/image/tours/batova-enduro.jpg",
	},
}

var legalDocuments = map[string]domain.LegalDocument{
	"terms": {
		Title: "Terms of Service",
		Content: []string{
			"These terms govern every purchase made through the 2GETHER Bikes online store, operated by Euro Code 1 Ltd., registry ID 203949089.",
			"All listed prices are final and include VAT. The store reserves the right to correct obvious pricing errors before an order is dispatched.",
			"Orders are delivered by our courier partner within the published delivery window. Ownership transfers on handover.",
			"Consumers may return goods within 14 days of delivery in unused condition and original packaging.",
		},
	},
	"privacy": {
		Title: "Privacy Policy",
		Content: []string{
			"We process the personal data you provide at registration and checkout solely to fulfil orders and provide warranty service.",
			"Card payments are processed by an external payment provider; card numbers never reach or transit our systems.",
			"You may request a copy or deletion of your data at any time through the contact address published on this site.",
		},
	},
	"warranty": {
		Title: "Warranty Conditions",
		Content: []string{
			"New bicycles carry a 24-month warranty on frame and fork and a 12-month warranty on components, subject to the manufacturer's terms.",
			"The warranty covers manufacturing defects only. Wear items, crash damage and unauthorised modifications are excluded.",
			"A free first service is included with every new bike within the first 300 km or 3 months, whichever comes first.",
		},
	},
}

var products = []domain.Product{
	{
		ID:       "orbea-alma-h10-eagle",
		Slug:     "orbea-alma-h10-eagle-ice-green",
		Brand:    domain.BrandOrbea,
		Category: domain.CategoryMountain,
		Name:     "Orbea Alma H10-EAGLE (Ice Green - Ocean)",
		Price:    3059.00,
		InStock:  true,
		Sizes:    []string{"M", "L", "XL"},
		Description: "The Alma H10 is built for speed. A light hydroformed aluminium frame, a 12-speed SRAM NX Eagle drivetrain and a RockShox air fork make it ready for race starts and long mountain days alike. Ships with a dropper post for extra control on descents.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/orbea/alma-h10-eagle-ice-green.jpg",
		},
		Specs: map[string]string{
			"Frame":       "Orbea Alma Hydro Alloy, Boost 12x148, BSA BB, internal cable routing",
			"Fork":        "RockShox Judy Silver TK Remote Solo Air 100 QR15x110 Boost",
			"Crankset":    "SRAM Stylo 6K Eagle Dub Boost 32t Steel",
			"Shifters":    "SRAM NX Eagle",
			"Cassette":    "SRAM PG-1230 Eagle 11-50t 12-Speed",
			"Derailleur":  "SRAM NX Eagle",
			"Brakes":      "Shimano MT201 Hydraulic Disc",
			"Tires":       "Maxxis Ikon 2.20\" FB 60 TPI Dual",
			"Seatpost":    "OC Mountain Control MC20, 27.2mm, Dropper, Travel 80mm",
			"Saddle":      "Selle Italia Model X FecAlloy Rail 145x248mm",
		},
	},
	{
		ID:       "orbea-oiz-m-ltd-xx",
		Slug:     "orbea-oiz-m-ltd-xx",
		Brand:    domain.BrandOrbea,
		Category: domain.CategoryMountain,
		Name:     "Orbea Oiz M-LTD XX (Digital Lavender)",
		Price:    16639.00,
		InStock:  true,
		Sizes:    []string{"M", "L", "XL"},
		Description: "The peak of XC evolution. The Oiz M-LTD is not merely light; it is a 120 mm World Cup machine carrying the lightest electronic groupset on the market and Fox Factory Kashima suspension at both ends. Built for podiums.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/orbea/oiz-m-ltd-xx-lavender.jpg",
		},
		Specs: map[string]string{
			"Frame":      "Orbea Oiz Carbon OMX, Fiberlink, Boost, BSA, I-line shock",
			"Shock":      "Fox i-line DPS Factory 120mm Remote Push-Unlock Evol Kashima",
			"Fork":       "Fox 34 Float SC Factory 120 FIT4 Remote-Adj QR15x110",
			"Crankset":   "SRAM XX SL Eagle Dub Black 34t",
			"Cassette":   "SRAM XX-1299 Eagle SL 10-52t 12-Speed",
			"Derailleur": "SRAM XX Eagle SL AXS",
			"Brakes":     "SRAM Level Ultimate Carbon 2-piston Hydraulic Disc",
			"Wheels":     "Oquo Mountain Performance MP30LTD",
			"Tires":      "Maxxis Rekon Race 2.40\" WT 120 TPI Exo TLR",
			"Seatpost":   "Fox Transfer SL Factory Kashima Dropper 31.6",
		},
	},
	{
		ID:       "santa-cruz-v10-8-cc",
		Slug:     "santa-cruz-v10-8-cc-s-kit-mx",
		Brand:    domain.BrandSantaCruz,
		Category: domain.CategoryMountain,
		Name:     "Santa Cruz V10 8 CC S-Kit MX (Gloss Black Sparkle)",
		Price:    15399.00,
		InStock:  true,
		Sizes:    []string{"MD", "LG", "XL"},
		Description: "A legendary downhill bike built for the hardest tracks in the world. VPP suspension, a CC carbon frame and the uncompromising S-kit build. Race-ready straight out of the box.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/santacruz/v10-8-cc-s-kit-mx.jpg",
			"https://2getherbikes.bg/image/catalog/santacruz/v10-8-cc-s-kit-mx-detail.jpg",
		},
		Specs: map[string]string{
			"Weight":       "16.69 kg",
			"Frame":        "Carbon CC, 208mm VPP travel",
			"Fork":         "RockShox Boxxer Ultimate 200mm",
			"Shock":        "RockShox Vivid Ultimate",
			"Drivetrain":   "SRAM GX DH 7-Speed",
			"Brakes":       "SRAM Maven Silver 4-piston",
			"Wheels":       "Reserve 30|HD DH, MX 29\"/27.5\"",
		},
	},
	{
		ID:       "giant-tcr-advanced-2",
		Slug:     "giant-tcr-advanced-2-pro-compact",
		Brand:    domain.BrandGiant,
		Category: domain.CategoryRoad,
		Name:     "Giant TCR Advanced 2-PC (Frost Silver)",
		Price:    4299.00,
		InStock:  true,
		Sizes:    []string{"S", "M", "ML", "L"},
		Description: "The benchmark all-round race bike. Advanced-grade composite frameset, Shimano 105 12-speed and tubeless wheels out of the box. Stiff where it counts, compliant where it matters.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/giant/tcr-advanced-2-frost-silver.jpg",
		},
		Specs: map[string]string{
			"Frame":      "Advanced-Grade Composite, disc",
			"Fork":       "Advanced-Grade Composite, full-composite OverDrive steerer",
			"Drivetrain": "Shimano 105 R7100 12-Speed",
			"Brakes":     "Shimano 105 hydraulic disc",
			"Wheels":     "Giant P-R2 Disc Tubeless",
			"Tires":      "Giant Gavia Fondo 1, 700x28, tubeless",
		},
	},
	{
		ID:       "giant-explore-e-plus-2",
		Slug:     "giant-explore-e-plus-2-gts",
		Brand:    domain.BrandGiant,
		Category: domain.CategoryElectric,
		Name:     "Giant Explore E+ 2 GTS (Black Currant)",
		Price:    5599.00,
		OriginalPrice: 6299.00,
		IsSale:   true,
		InStock:  true,
		Sizes:    []string{"M", "L", "XL"},
		Description: "A do-everything electric adventure bike. The SyncDrive Sport motor delivers 75 Nm of natural-feeling assistance, and the 625 Wh battery takes you far beyond the city limits. Rack, fenders and lights included.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/giant/explore-e-plus-2-gts.jpg",
		},
		Specs: map[string]string{
			"Frame":   "ALUXX SL-Grade Aluminium, integrated battery",
			"Motor":   "Giant SyncDrive Sport, 75 Nm",
			"Battery": "EnergyPak Smart 625 Wh",
			"Fork":    "SR Suntour NEX E25, 63mm",
			"Drivetrain": "Shimano Deore 10-Speed",
			"Brakes":  "Shimano MT200 hydraulic disc",
		},
	},
	{
		ID:       "orbea-laufey-h30-junior",
		Slug:     "orbea-laufey-h30-27-junior",
		Brand:    domain.BrandOrbea,
		Category: domain.CategoryKids,
		Name:     "Orbea Laufey 27 H30 Junior (Blue)",
		Price:    1499.00,
		InStock:  true,
		Sizes:    []string{"XS"},
		Description: "A proper trail hardtail scaled for younger riders. Short reach levers, low standover and 27.5\" wheels give growing riders real mountain-bike capability without compromise.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/orbea/laufey-27-h30-junior.jpg",
		},
		Specs: map[string]string{
			"Frame":      "Orbea Laufey Alloy 27.5\"",
			"Fork":       "Marzocchi Bomber Z2 120mm",
			"Drivetrain": "Shimano Deore 11-Speed",
			"Brakes":     "Shimano MT201 hydraulic disc",
		},
	},
	{
		ID:       "giant-escape-3-city",
		Slug:     "giant-escape-3-city-black",
		Brand:    domain.BrandGiant,
		Category: domain.CategoryCity,
		Name:     "Giant Escape 3 (Metallic Black)",
		Price:    799.00,
		InStock:  true,
		Sizes:    []string{"S", "M", "L"},
		Description: "A light, confident flat-bar bike for commuting and fitness. Upright geometry, puncture-resistant tires and mounts for racks and fenders make it the honest workhorse of the range.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/giant/escape-3-metallic-black.jpg",
		},
		Specs: map[string]string{
			"Frame":      "ALUXX-Grade Aluminium",
			"Fork":       "Steel, 700c",
			"Drivetrain": "Shimano Tourney 3x8",
			"Brakes":     "Tektro alloy linear-pull",
			"Tires":      "Giant S-X3, 700x40",
		},
	},
	{
		ID:       "fox-proframe-rs-helmet",
		Slug:     "fox-proframe-rs-helmet-matte-black",
		Brand:    domain.BrandMerch,
		Category: domain.CategoryGear,
		Name:     "Fox Proframe RS Helmet (Matte Black)",
		Price:    699.00,
		OriginalPrice: 799.00,
		IsSale:   true,
		InStock:  true,
		Sizes:    []string{"S", "M", "L"},
		Description: "A fully certified full-face helmet light enough to pedal in all day. MIPS Integra Split protection, huge vent count and a magnetic buckle. The enduro benchmark.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/gear/fox-proframe-rs-matte-black.jpg",
		},
		Specs: map[string]string{
			"Material":      "Multi-density Varizorb EPS, polycarbonate shell",
			"Weight":        "780 g (size M)",
			"Certification": "ASTM F1952, CE EN1078",
		},
	},
	{
		ID:       "2gether-trail-jersey",
		Slug:     "2gether-trail-jersey-ls",
		Brand:    domain.BrandTogether,
		Category: domain.CategoryMerchandise,
		Name:     "2GETHER Trail Jersey Long Sleeve",
		Price:    89.00,
		InStock:  true,
		Sizes:    []string{"S", "M", "L", "XL", "XXL"},
		Description: "Our own long-sleeve trail jersey in a quick-drying recycled fabric. Relaxed fit, drop tail, and the shop ride motto printed across the back.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/merch/2gether-trail-jersey-ls.jpg",
		},
		Specs: map[string]string{
			"Material": "100% recycled polyester, 135 g/m2",
			"Fit":      "Relaxed trail fit",
		},
	},
	{
		ID:       "2gether-coffee-mug",
		Slug:     "2gether-enamel-coffee-mug",
		Brand:    domain.BrandTogether,
		Category: domain.CategoryMerchandise,
		Name:     "2GETHER Enamel Coffee Mug",
		Price:    24.00,
		InStock:  false,
		Sizes:    []string{"One Size"},
		Description: "Steel enamel mug for the trailhead coffee that starts every good ride. 350 ml, fire-safe, shop logo on both sides.",
		Images: []string{
			"https://2getherbikes.bg/image/catalog/merch/2gether-enamel-mug.jpg",
		},
		Specs: map[string]string{
			"Material": "Enamelled steel",
			"Volume":   "350 ml",
		},
	},
}
