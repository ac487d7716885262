package ranking

import "Dish-Discovery/entities"

// SignatureDish returns the dish a restaurant is best known for: the
// explicit override when it still points at one of its active dishes,
// otherwise the most saved one.
func SignatureDish(restaurant *entities.Restaurant, dishes []*entities.Dish) *entities.Dish {
	var own []*entities.Dish
	for _, d := range active(dishes) {
		if d.RestaurantID == restaurant.ID {
			own = append(own, d)
		}
	}

	if restaurant.SignatureDishID != nil {
		for _, d := range own {
			if d.ID == *restaurant.SignatureDishID {
				return d
			}
		}
	}

	var best *entities.Dish
	for _, d := range own {
		if best == nil || d.SavedCount > best.SavedCount {
			best = d
		}
	}
	return best
}
