package main

import (
	"encoding/csv"
	"hotelaudit/config"
	"hotelaudit/database"
	"hotelaudit/models"
	"log"
	"os"
	"strings"
)

// Bulk property onboarding. Reads Properties.csv from the working directory
// and upserts hotel groups and properties keyed by group + property name.
//
// Expected headers: hotelGroup, name, location, managerName, managerEmail
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("Properties.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	groupIDs := make(map[string]uint)

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		groupName := getField(row, headerIndex, "hotelGroup")
		name := getField(row, headerIndex, "name")
		location := getField(row, headerIndex, "location")

		if groupName == "" || name == "" {
			log.Printf("Row %d missing hotelGroup or name, skipping", i+2)
			skipped++
			continue
		}

		groupID, ok := groupIDs[groupName]
		if !ok {
			var group models.HotelGroup
			result := database.Database.Db.Where("name = ?", groupName).First(&group)
			if result.Error != nil {
				group = models.HotelGroup{Name: groupName}
				if err := database.Database.Db.Create(&group).Error; err != nil {
					log.Printf("Error creating hotel group %s: %v", groupName, err)
					skipped++
					continue
				}
			}
			groupID = group.ID
			groupIDs[groupName] = groupID
		}

		property := models.Property{
			Name:         name,
			Location:     location,
			HotelGroupID: groupID,
			ManagerName:  getField(row, headerIndex, "managerName"),
			ManagerEmail: getField(row, headerIndex, "managerEmail"),
			Status:       "active",
		}

		var existing models.Property
		result := database.Database.Db.
			Where("hotel_group_id = ? AND name = ?", groupID, name).
			First(&existing)

		if result.Error != nil {
			if err := database.Database.Db.Create(&property).Error; err != nil {
				log.Printf("Error inserting property %s: %v", name, err)
				continue
			}
			inserted++
		} else {
			existing.Location = property.Location
			existing.ManagerName = property.ManagerName
			existing.ManagerEmail = property.ManagerEmail
			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating property %s: %v", name, err)
				continue
			}
			updated++
		}
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}

func getField(row []string, headerIndex map[string]int, key string) string {
	idx, ok := headerIndex[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
