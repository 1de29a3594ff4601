package parser

import "newsease/internal/domain"

type catalogue struct {
	titles       []string
	descriptions []string
	sources      []domain.Source
}

func source(id, name, description, url, category string) domain.Source {
	return domain.Source{
		ID:          id,
		Name:        name,
		Description: description,
		URL:         url,
		Category:    category,
		Language:    "en",
		Country:     "us",
	}
}

var generalSources = []domain.Source{
	source("news-central", "News Central", "Comprehensive news coverage", "https://newscentral.com", "general"),
}

var catalogues = map[domain.Category]catalogue{
	domain.CategoryTechnology: {
		titles: []string{
			"AI Revolution Transforms Software Development",
			"Quantum Computing Breakthrough Achieved",
			"5G Networks Enable New IoT Applications",
			"Cybersecurity Threats Evolve with Technology",
			"Blockchain Technology Finds New Use Cases",
			"Virtual Reality Enters Mainstream Market",
			"Edge Computing Reduces Latency Issues",
			"Machine Learning Improves Medical Diagnosis",
		},
		descriptions: []string{
			"Latest technological innovations continue to reshape industries and improve daily life.",
			"Cutting-edge research and development lead to breakthrough discoveries.",
			"Technology companies push the boundaries of what's possible.",
			"Digital transformation accelerates across all sectors of the economy.",
		},
		sources: []domain.Source{
			source("tech-insider", "Tech Insider", "Technology news and analysis", "https://techinsider.com", "technology"),
			source("digital-trends", "Digital Trends", "Latest in digital technology", "https://digitaltrends.com", "technology"),
		},
	},
	domain.CategoryBusiness: {
		titles: []string{
			"Stock Market Reaches New All-Time High",
			"Startup Funding Hits Record Levels",
			"Major Merger Reshapes Industry Landscape",
			"Economic Indicators Show Strong Growth",
			"Supply Chain Challenges Create Opportunities",
			"Remote Work Transforms Corporate Culture",
			"Sustainable Business Practices Gain Momentum",
			"Digital Transformation Accelerates",
		},
		descriptions: []string{
			"Market analysis reveals trends that could impact investment strategies.",
			"Business leaders adapt to changing economic conditions and consumer demands.",
			"Corporate innovation drives growth and competitive advantage.",
			"Economic policies create new opportunities for businesses and investors.",
		},
		sources: []domain.Source{
			source("business-weekly", "Business Weekly", "Business news and insights", "https://businessweekly.com", "business"),
			source("market-watch", "Market Watch", "Financial market analysis", "https://marketwatch.com", "business"),
		},
	},
	domain.CategoryHealth: {
		titles: []string{
			"New Treatment Shows Promise for Rare Disease",
			"Mental Health Awareness Campaign Launches",
			"Breakthrough in Cancer Research Announced",
			"Fitness Technology Improves Health Outcomes",
			"Nutrition Study Reveals Surprising Results",
			"Telemedicine Usage Continues to Grow",
			"Vaccine Development Reaches New Milestone",
			"Public Health Initiative Targets Prevention",
		},
		descriptions: []string{
			"Medical research continues to advance treatment options for patients.",
			"Healthcare professionals implement new approaches to patient care.",
			"Public health initiatives focus on prevention and wellness.",
			"Healthcare technology improves diagnosis and treatment outcomes.",
		},
		sources: generalSources,
	},
	domain.CategoryScience: {
		titles: []string{
			"Space Mission Discovers New Exoplanet",
			"Climate Research Reveals Unexpected Findings",
			"Archaeological Discovery Rewrites History",
			"Marine Biology Study Uncovers New Species",
			"Physics Experiment Confirms Theoretical Model",
			"Environmental Conservation Effort Shows Results",
			"Renewable Energy Efficiency Improves",
			"Genetic Research Opens New Possibilities",
		},
		descriptions: []string{
			"Scientific discoveries expand our understanding of the natural world.",
			"Research findings have implications for future technological development.",
			"Environmental studies inform conservation and sustainability efforts.",
			"Scientific collaboration leads to breakthrough innovations.",
		},
		sources: generalSources,
	},
	domain.CategorySports: {
		titles: []string{
			"Championship Final Breaks Viewership Records",
			"Olympic Training Program Shows Innovation",
			"Sports Medicine Advances Athlete Recovery",
			"Youth Sports Participation Reaches New High",
			"Professional League Expands Internationally",
			"Stadium Technology Enhances Fan Experience",
			"Sports Analytics Revolutionizes Strategy",
			"Athletic Scholarship Program Launches",
		},
		descriptions: []string{
			"Athletic achievements inspire and entertain fans around the world.",
			"Sports organizations implement new programs and initiatives.",
			"Technology and analytics transform how sports are played and watched.",
			"Community sports programs promote health and social connection.",
		},
		sources: generalSources,
	},
	domain.CategoryEntertainment: {
		titles: []string{
			"Film Festival Showcases Independent Cinema",
			"Streaming Platform Announces Original Series",
			"Music Industry Embraces Digital Innovation",
			"Gaming Technology Creates Immersive Experiences",
			"Theater Productions Return to Full Capacity",
			"Celebrity Charity Event Raises Millions",
			"Art Exhibition Features Contemporary Artists",
			"Entertainment Awards Honor Outstanding Work",
		},
		descriptions: []string{
			"Creative industries continue to evolve with new technologies and platforms.",
			"Artists and performers find innovative ways to connect with audiences.",
			"Entertainment content reflects and shapes cultural conversations.",
			"Industry developments impact how we consume and create media.",
		},
		sources: generalSources,
	},
	domain.CategoryGeneral: {
		titles: []string{
			"Community Initiative Brings Positive Change",
			"Local Government Announces Infrastructure Plan",
			"Education Program Receives National Recognition",
			"Environmental Project Restores Natural Habitat",
			"Cultural Festival Celebrates Diversity",
			"Transportation Improvements Benefit Commuters",
			"Housing Development Addresses Affordability",
			"Public Safety Measures Show Effectiveness",
		},
		descriptions: []string{
			"Community developments affect the daily lives of local residents.",
			"Public policies and initiatives address important social issues.",
			"Local organizations work to improve quality of life for all.",
			"Civic engagement and participation strengthen democratic institutions.",
		},
		sources: generalSources,
	},
}

var localTitles = []string{
	"Local Business District Sees Major Revitalization Project",
	"City Council Approves New Public Transportation Initiative",
	"Community Festival Brings Together Local Artists and Vendors",
	"New Park Opens with State-of-the-Art Facilities",
	"Local University Announces Groundbreaking Research Program",
	"Downtown Area to Get New Bike Sharing Program",
	"Local Restaurant Chain Expands to Three New Locations",
	"City Implements New Recycling Program",
	"Local Sports Team Wins Regional Championship",
	"Community Garden Project Transforms Vacant Lot",
}

var localDescriptions = []string{
	"Exciting developments in the local community bring new opportunities for residents and businesses.",
	"City officials announce plans that will significantly impact the daily lives of local residents.",
	"Community initiatives continue to strengthen local bonds and promote economic growth.",
	"New facilities and services enhance the quality of life for area residents.",
	"Local institutions contribute to the advancement of knowledge and community development.",
}

// Search titles are formatted with the title-cased query.
var searchTemplates = []string{
	"%s Industry Sees Unprecedented Growth",
	"Experts Discuss the Future of %s",
	"Breaking: Major Developments in %s Sector",
	"Analysis: How %s is Changing the World",
	"New Study Reveals Impact of %s on Society",
}

var headlineTitles = []string{
	"Breaking: Major Political Development Shakes Capital",
	"Economic Markets React to Latest Policy Changes",
	"International Summit Addresses Global Challenges",
	"Technology Giants Announce Strategic Partnership",
	"Climate Action Plan Receives Widespread Support",
	"Healthcare Innovation Promises Better Patient Outcomes",
	"Education Reform Initiative Launches Nationwide",
	"Infrastructure Investment Program Gets Green Light",
}

var contentParagraphs = []string{
	"This developing story continues to unfold as experts analyze the implications and potential outcomes. Stakeholders from various sectors are closely monitoring the situation and preparing for potential impacts.",
	"Industry leaders have responded with cautious optimism, noting that while challenges remain, there are significant opportunities for growth and innovation. The long-term effects are expected to be substantial.",
	"Analysts suggest that this development could set a precedent for future initiatives and policies. The response from the public and private sectors will likely influence how similar situations are handled in the future.",
	"Further details are expected to emerge as investigations continue and more information becomes available. Experts recommend staying informed about developments as they occur.",
}

var (
	firstNames = []string{"Sarah", "Michael", "Emma", "David", "Lisa", "James", "Maria", "Robert", "Jennifer", "William"}
	lastNames  = []string{"Johnson", "Smith", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
)

var imageURLs = []string{
	"https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=800",
	"https://images.unsplash.com/photo-1495020689067-958852a7765e?w=800",
	"https://images.unsplash.com/photo-1504384308090-c894fdcc538d?w=800",
	"https://images.unsplash.com/photo-1557804506-669a67965ba0?w=800",
	"https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=800",
}

const localImageURL = "https://images.unsplash.com/photo-1477959858617-67f85cf4f1df?w=800"
