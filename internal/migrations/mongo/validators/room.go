package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_type",
			"available",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 36,
			},

			"room_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Single",
					"Double",
					"Suite",
				},
			},

			"available": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
