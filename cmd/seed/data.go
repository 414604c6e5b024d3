package main

import "github.com/apnadr/hospital-api/internal/model"

// telanganaHospitals is the government-hospital fixture set loaded on first
// run. Coordinates are (longitude, latitude).
var telanganaHospitals = []model.Hospital{
	{
		Name:      "Osmania General Hospital",
		City:      "Hyderabad",
		Address:   "Afzalgunj, Hyderabad, Telangana 500012",
		Phone:     "+91 40 2345 6789",
		Email:     "ogh.hyderabad@telangana.gov.in",
		Longitude: 78.4867,
		Latitude:  17.3850,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Rajesh Kumar", Specialization: "General Medicine", Experience: 15, Available: true},
			{ID: 2, Name: "Dr. Priya Sharma", Specialization: "Gynecology", Experience: 12, Available: true},
			{ID: 3, Name: "Dr. Anil Kumar", Specialization: "Pediatrics", Experience: 10, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Surgery", "Laboratory", "X-Ray"},
		Rating:     4.2,
		Emergency:  true,
		Type:       "Government",
	},
	{
		Name:      "Gandhi Hospital",
		City:      "Hyderabad",
		Address:   "Musheerabad, Secunderabad, Hyderabad, Telangana 500020",
		Phone:     "+91 40 2345 6790",
		Email:     "gandhi.hospital@telangana.gov.in",
		Longitude: 78.5034,
		Latitude:  17.4399,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Sunita Verma", Specialization: "Cardiology", Experience: 18, Available: true},
			{ID: 2, Name: "Dr. Amit Patel", Specialization: "Orthopedics", Experience: 14, Available: true},
			{ID: 3, Name: "Dr. Maria Garcia", Specialization: "Dermatology", Experience: 11, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Cardiology", "Radiology", "Blood Bank"},
		Rating:     4.0,
		Emergency:  true,
		Type:       "Government",
	},
	{
		Name:      "King Koti Government Hospital",
		City:      "Hyderabad",
		Address:   "King Koti, Abids, Hyderabad, Telangana 500001",
		Phone:     "+91 40 2345 6791",
		Email:     "kingkoti.hospital@telangana.gov.in",
		Longitude: 78.4744,
		Latitude:  17.3936,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Lisa Wang", Specialization: "Oncology", Experience: 20, Available: true},
			{ID: 2, Name: "Dr. James Wilson", Specialization: "Psychiatry", Experience: 16, Available: true},
			{ID: 3, Name: "Dr. Carlos Rodriguez", Specialization: "Endocrinology", Experience: 13, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Oncology", "Psychiatry", "Laboratory"},
		Rating:     3.8,
		Emergency:  true,
		Type:       "Government",
	},
	{
		Name:      "Government Maternity Hospital",
		City:      "Hyderabad",
		Address:   "Sultan Bazar, Hyderabad, Telangana 500095",
		Phone:     "+91 40 2345 6793",
		Email:     "maternity.hospital@telangana.gov.in",
		Longitude: 78.4835,
		Latitude:  17.3826,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Priya Reddy", Specialization: "Gynecology", Experience: 15, Available: true},
			{ID: 2, Name: "Dr. Anjali Sharma", Specialization: "Obstetrics", Experience: 12, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Gynecology", "Obstetrics", "Neonatal Care"},
		Rating:     4.3,
		Emergency:  true,
		Type:       "Government",
	},
	{
		Name:      "Government Chest Hospital",
		City:      "Hyderabad",
		Address:   "Erragadda, Hyderabad, Telangana 500018",
		Phone:     "+91 40 2345 6794",
		Email:     "chest.hospital@telangana.gov.in",
		Longitude: 78.4227,
		Latitude:  17.4548,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Rajesh Kumar", Specialization: "Pulmonology", Experience: 18, Available: true},
			{ID: 2, Name: "Dr. Sunita Verma", Specialization: "Chest Medicine", Experience: 14, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Pulmonology", "Chest Medicine", "X-Ray"},
		Rating:     4.0,
		Emergency:  true,
		Type:       "Government",
	},
	{
		Name:      "MGM Hospital Warangal",
		City:      "Warangal",
		Address:   "MGM Hospital Road, Warangal, Telangana 506007",
		Phone:     "+91 870 245 5555",
		Email:     "mgmwarangal@telangana.gov.in",
		Longitude: 79.5946,
		Latitude:  17.9689,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. David Brown", Specialization: "Urology", Experience: 17, Available: true},
			{ID: 2, Name: "Dr. Jennifer Lee", Specialization: "Ophthalmology", Experience: 12, Available: true},
			{ID: 3, Name: "Dr. Robert Taylor", Specialization: "ENT", Experience: 15, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Urology", "Ophthalmology", "Blood Bank"},
		Rating:     4.1,
		Emergency:  true,
		Type:       "Government",
	},
	{
		Name:      "Government District Hospital Ranga Reddy",
		City:      "Ranga Reddy",
		Address:   "District Hospital Road, Ranga Reddy, Telangana 501301",
		Phone:     "+91 40 2345 6792",
		Email:     "rrdistrict.hospital@telangana.gov.in",
		Longitude: 78.2432,
		Latitude:  17.1861,
		Doctors: []model.Doctor{
			{ID: 1, Name: "Dr. Anna Kim", Specialization: "Pulmonology", Experience: 19, Available: true},
			{ID: 2, Name: "Dr. Michael Chen", Specialization: "Gastroenterology", Experience: 14, Available: true},
			{ID: 3, Name: "Dr. Sarah Johnson", Specialization: "Rheumatology", Experience: 11, Available: true},
		},
		Facilities: []string{"ICU", "Emergency", "Pulmonology", "Gastroenterology", "Laboratory"},
		Rating:     3.9,
		Emergency:  true,
		Type:       "Government",
	},
}
