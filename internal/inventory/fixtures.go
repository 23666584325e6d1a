// internal/inventory/fixtures.go
package inventory

import "trip-ranker/internal/models"

// Bundled fallback inventory. Treated as read-only; Fixtures hands out copies.

var fixtureFlights = []models.Flight{
	{Airline: "IndiGo", Price: 8500, Stops: 0, Time: "10:00", Duration: "2h 15m"},
	{Airline: "Air India", Price: 12000, Stops: 0, Time: "18:00", Duration: "2h 30m"},
	{Airline: "SpiceJet", Price: 6500, Stops: 1, Time: "23:00", Duration: "4h 45m"},
	{Airline: "Vistara", Price: 10500, Stops: 0, Time: "07:30", Duration: "2h 20m"},
	{Airline: "Go First", Price: 7200, Stops: 1, Time: "15:00", Duration: "5h 10m"},
}

var fixtureHotels = []models.Hotel{
	{
		Name: "Beachside Hostel", PricePerNight: 1200, NearMetro: true, Rating: 4.2,
		Amenities: []string{"WiFi", "Breakfast", "Pool"},
		Image:     "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?auto=format&fit=crop&w=800&q=80",
	},
	{
		Name: "Urban Stay Inn", PricePerNight: 3500, NearMetro: true, Rating: 4.5,
		Amenities: []string{"WiFi", "Breakfast", "Gym", "Restaurant"},
		Image:     "https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&w=800&q=80",
	},
	{
		Name: "Luxury Palms Resort", PricePerNight: 15000, NearMetro: false, Rating: 5.0,
		Amenities: []string{"WiFi", "Breakfast", "Pool", "Spa", "Beach Access"},
		Image:     "https://images.unsplash.com/photo-1542314831-068cd1dbfeeb?auto=format&fit=crop&w=800&q=80",
	},
	{
		Name: "Coastal Comfort Hotel", PricePerNight: 5500, NearMetro: false, Rating: 4.3,
		Amenities: []string{"WiFi", "Breakfast", "Pool"},
		Image:     "https://images.unsplash.com/photo-1571896349842-33c89424de2d?auto=format&fit=crop&w=800&q=80",
	},
	{
		Name: "Budget Traveler's Inn", PricePerNight: 1800, NearMetro: true, Rating: 3.8,
		Amenities: []string{"WiFi", "Basic Breakfast"},
		Image:     "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?auto=format&fit=crop&w=800&q=80",
	},
	{
		Name: "Heritage Bay Resort", PricePerNight: 8500, NearMetro: false, Rating: 4.7,
		Amenities: []string{"WiFi", "Breakfast", "Pool", "Restaurant", "Cultural Tours"},
		Image:     "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?auto=format&fit=crop&w=800&q=80",
	},
}

var fixtureActivities = []models.Activity{
	// mumbai
	{Name: "Gateway of India & Colaba Tour", Location: "mumbai", Price: 600, Duration: "3 hours",
		Tags: []string{"sightseeing", "culture", "history"}, Moods: []string{"culture", "history"},
		Description: "Iconic monument and heritage walk"},
	{Name: "Marine Drive Evening Walk", Location: "mumbai", Price: 0, Duration: "2 hours",
		Tags: []string{"scenic", "relaxation", "nature"}, Moods: []string{"relaxation", "peaceful"},
		Description: "Mumbai's famous seaside promenade at sunset"},
	{Name: "Bollywood Studio Tour", Location: "mumbai", Price: 1200, Duration: "4 hours",
		Tags: []string{"culture", "entertainment", "learning"}, Moods: []string{"entertainment"},
		Description: "Behind-the-scenes Bollywood film studio experience"},
	{Name: "Street Food Tour in Bandra", Location: "mumbai", Price: 800, Duration: "3 hours",
		Tags: []string{"food", "culture", "adventure"},
		Description: "Authentic street food with local guide"},
	{Name: "Island Hopping Cruise", Location: "mumbai", Price: 1500, Duration: "4 hours",
		Tags: []string{"water", "adventure", "scenic"},
		Description: "Visit nearby islands and forts"},

	// delhi
	{Name: "Red Fort & Old Delhi Heritage Walk", Location: "delhi", Price: 500, Duration: "4 hours",
		Tags: []string{"sightseeing", "culture", "history"},
		Description: "Mughal architecture and heritage lanes"},
	{Name: "Raj Ghat & Gandhi Memorial Tour", Location: "delhi", Price: 0, Duration: "2 hours",
		Tags: []string{"sightseeing", "history", "culture"},
		Description: "Historical monuments and memorials"},
	{Name: "New Delhi Monument Cycle Tour", Location: "delhi", Price: 400, Duration: "3 hours",
		Tags: []string{"adventure", "fitness", "sightseeing"},
		Description: "India Gate, Parliament, and central monuments"},
	{Name: "Chandni Chowk Shopping & Food Adventure", Location: "delhi", Price: 600, Duration: "3 hours",
		Tags: []string{"shopping", "food", "culture"},
		Description: "Historic bazaar and street delicacies"},
	{Name: "Sufi Music & Poetry Evening", Location: "delhi", Price: 800, Duration: "2.5 hours",
		Tags: []string{"culture", "entertainment", "relaxation"},
		Description: "Traditional Sufi performances and qawwali"},

	// goa
	{Name: "Scuba Diving Expedition", Location: "goa", Price: 3500, Duration: "4 hours",
		Tags: []string{"adventure", "water", "sports"}, Moods: []string{"adventure"},
		Description: "Explore underwater marine life and coral"},
	{Name: "Dudhsagar Waterfall Trek", Location: "goa", Price: 1800, Duration: "Full day",
		Tags: []string{"adventure", "nature", "hiking"}, Moods: []string{"adventure", "nature"},
		Description: "Trek through jungle to India's tallest waterfall"},
	{Name: "Spice Plantation Tour", Location: "goa", Price: 900, Duration: "4 hours",
		Tags: []string{"nature", "culture", "food"}, Moods: []string{"relaxation", "culture"},
		Description: "Learn about local spices and enjoy traditional lunch"},
	{Name: "Beach Parasailing & Water Sports", Location: "goa", Price: 2500, Duration: "2 hours",
		Tags: []string{"adventure", "water", "sports"}, Moods: []string{"celebration", "adventure"},
		Description: "Parasailing, jet ski, and banana boat rides"},
	{Name: "Old Goa Heritage Walk", Location: "goa", Price: 500, Duration: "3 hours",
		Tags: []string{"culture", "history", "sightseeing"}, Moods: []string{"culture", "history"},
		Description: "Ancient churches, convents, and monuments"},
	{Name: "Sunset Catamaran Cruise with Dinner", Location: "goa", Price: 2000, Duration: "3 hours",
		Tags: []string{"romantic", "water", "food"}, Moods: []string{"celebration", "romantic"},
		Description: "Evening boat ride with dinner and music"},

	// jaipur
	{Name: "City Palace & Jantar Mantar Tour", Location: "jaipur", Price: 700, Duration: "3 hours",
		Tags: []string{"sightseeing", "culture", "history"}, Moods: []string{"culture", "history"},
		Description: "Royal palaces and astronomical monuments"},
	{Name: "Hawa Mahal (Palace of Winds) Visit", Location: "jaipur", Price: 200, Duration: "1.5 hours",
		Tags: []string{"sightseeing", "photography", "culture"}, Moods: []string{"culture", "history"},
		Description: "Iconic pink structure with street photography"},
	{Name: "Albert Hall Museum & Bazaar Walk", Location: "jaipur", Price: 600, Duration: "3 hours",
		Tags: []string{"culture", "shopping", "learning"}, Moods: []string{"culture"},
		Description: "Museum visit and local markets"},
	{Name: "Desert Jeep Safari & Camping", Location: "jaipur", Price: 3000, Duration: "Full day",
		Tags: []string{"adventure", "nature", "camping"}, Moods: []string{"adventure", "nature"},
		Description: "Jeep safari in Thar Desert with sunset camp"},
	{Name: "Cooking Class - Rajasthani Cuisine", Location: "jaipur", Price: 1200, Duration: "3 hours",
		Tags: []string{"food", "culture", "learning"}, Moods: []string{"culture"},
		Description: "Traditional Rajasthani cooking workshop"},

	// bangalore
	{Name: "Tech Campus Tour & Innovation Hub", Location: "bangalore", Price: 500, Duration: "2.5 hours",
		Tags: []string{"technology", "learning", "sightseeing"},
		Description: "Silicon Valley of India tour"},
	{Name: "Cubbon Park Nature Walk", Location: "bangalore", Price: 0, Duration: "2 hours",
		Tags: []string{"nature", "fitness", "relaxation"},
		Description: "Urban forest with diverse flora and fauna"},
	{Name: "Bangalore Fort & Vidhana Soudha Heritage Tour", Location: "bangalore", Price: 400, Duration: "2.5 hours",
		Tags: []string{"sightseeing", "history", "culture"},
		Description: "Historical monuments and architecture"},
	{Name: "Coffee Plantation Visit Near Bangalore", Location: "bangalore", Price: 1000, Duration: "4 hours",
		Tags: []string{"nature", "food", "learning"},
		Description: "Coffee estates and tasting experience"},
	{Name: "Nightlife & Craft Beer Tour", Location: "bangalore", Price: 1500, Duration: "3 hours",
		Tags: []string{"food", "entertainment", "culture"},
		Description: "Breweries and local craft beer experience"},

	// hyderabad
	{Name: "Charminar & Old City Heritage Walk", Location: "hyderabad", Price: 600, Duration: "3 hours",
		Tags: []string{"sightseeing", "history", "culture"},
		Description: "400-year-old monument and historic lanes"},
	{Name: "Biryani Cooking Class", Location: "hyderabad", Price: 800, Duration: "3 hours",
		Tags: []string{"food", "culture", "learning"},
		Description: "Learn to cook authentic Hyderabadi biryani"},
	{Name: "Chowmahalla Palace & Salar Jung Museum", Location: "hyderabad", Price: 700, Duration: "3 hours",
		Tags: []string{"culture", "history", "learning"},
		Description: "Royal palace and art museum"},
	{Name: "Hussain Sagar Lake Sunset Boat Ride", Location: "hyderabad", Price: 400, Duration: "1.5 hours",
		Tags: []string{"water", "scenic", "relaxation"},
		Description: "Lake cruise with city skyline views"},

	// kerala
	{Name: "Backwater Houseboat Experience", Location: "kerala", Price: 4000, Duration: "Full day",
		Tags: []string{"water", "scenic", "relaxation"},
		Description: "Traditional houseboat journey through backwaters"},
	{Name: "Coconut Plantation & Spice Tour", Location: "kerala", Price: 900, Duration: "4 hours",
		Tags: []string{"nature", "culture", "food"},
		Description: "Spice gardens and plantation life"},
	{Name: "Kathakali Dance Performance & Makeup", Location: "kerala", Price: 1200, Duration: "3 hours",
		Tags: []string{"culture", "entertainment", "learning"},
		Description: "Traditional Kerala dance form and costumes"},
	{Name: "Beach Yoga & Ayurveda Wellness", Location: "kerala", Price: 1500, Duration: "3 hours",
		Tags: []string{"wellness", "fitness", "relaxation"},
		Description: "Yoga and Ayurvedic massage by the beach"},

	// ladakh
	{Name: "Leh Palace & Shanti Stupa Trek", Location: "ladakh", Price: 600, Duration: "3 hours",
		Tags: []string{"sightseeing", "hiking", "culture"},
		Description: "Ancient palace and Buddhist monument with views"},
	{Name: "Pangong Tso Lake High-Altitude Adventure", Location: "ladakh", Price: 2500, Duration: "Full day",
		Tags: []string{"adventure", "nature", "scenic"},
		Description: "World's highest saltwater lake drive"},
	{Name: "Monastery Tour & Buddhist Culture", Location: "ladakh", Price: 700, Duration: "4 hours",
		Tags: []string{"culture", "spirituality", "learning"},
		Description: "Visit ancient monasteries and meet monks"},
	{Name: "Mountain Biking Expedition", Location: "ladakh", Price: 1800, Duration: "Full day",
		Tags: []string{"adventure", "fitness", "nature"},
		Description: "High-altitude mountain biking experience"},

	// agra
	{Name: "Taj Mahal Sunrise & Guided Tour", Location: "agra", Price: 1200, Duration: "4 hours",
		Tags: []string{"sightseeing", "photography", "culture"},
		Description: "Experience the monument of love at sunrise"},
	{Name: "Agra Fort Heritage Tour", Location: "agra", Price: 500, Duration: "2.5 hours",
		Tags: []string{"history", "sightseeing", "culture"},
		Description: "Mughal emperor's fortress and palaces"},
	{Name: "Taj Mahal Sunset & Evening Tour", Location: "agra", Price: 1000, Duration: "3 hours",
		Tags: []string{"romantic", "photography", "culture"},
		Description: "Taj Mahal illuminated in soft evening light"},
}

var fixtureDestinations = []models.Destination{
	{Name: "Mumbai", BestMonths: []string{"October", "November", "December", "January", "February"}, Weather: "Tropical", Timezone: "IST", Currency: "INR"},
	{Name: "Delhi", BestMonths: []string{"October", "November", "December", "January", "February", "March"}, Weather: "Temperate", Timezone: "IST", Currency: "INR"},
	{Name: "Goa", BestMonths: []string{"November", "December", "January", "February"}, Weather: "Tropical", Timezone: "IST", Currency: "INR"},
	{Name: "Jaipur", BestMonths: []string{"October", "November", "December", "February", "March"}, Weather: "Semi-arid", Timezone: "IST", Currency: "INR"},
	{Name: "Bangalore", BestMonths: []string{"September", "October", "November", "December", "January"}, Weather: "Moderate", Timezone: "IST", Currency: "INR"},
	{Name: "Hyderabad", BestMonths: []string{"October", "November", "December", "January", "February", "March"}, Weather: "Semi-arid", Timezone: "IST", Currency: "INR"},
	{Name: "Kerala", BestMonths: []string{"September", "October", "November", "December", "January"}, Weather: "Tropical", Timezone: "IST", Currency: "INR"},
	{Name: "Ladakh", BestMonths: []string{"June", "July", "August", "September"}, Weather: "Alpine", Timezone: "IST", Currency: "INR"},
	{Name: "Agra", BestMonths: []string{"October", "November", "December", "January", "February", "March"}, Weather: "Temperate", Timezone: "IST", Currency: "INR"},
}

// Fixtures returns the bundled catalog: 5 flights, 6 hotels, 41 activities
// across 9 cities and their destination metadata.
func Fixtures() *Catalog {
	return &Catalog{
		Flights:      append([]models.Flight(nil), fixtureFlights...),
		Hotels:       append([]models.Hotel(nil), fixtureHotels...),
		Activities:   append([]models.Activity(nil), fixtureActivities...),
		Destinations: append([]models.Destination(nil), fixtureDestinations...),
	}
}

// FallbackFlights returns the bundled flights used when live search fails.
func FallbackFlights() []models.Flight {
	return append([]models.Flight(nil), fixtureFlights...)
}
