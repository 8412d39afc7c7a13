package geo

// regiones lists the sixteen Chilean regions north to south with the comunas
// the storefront ships to. Comuna order matches the selector order in the UI.
var regiones = []Region{
	{ID: 1, Nombre: "Arica y Parinacota", Comunas: []string{
		"Arica", "Camarones", "Putre", "General Lagos",
	}},
	{ID: 2, Nombre: "Tarapacá", Comunas: []string{
		"Iquique", "Alto Hospicio", "Pozo Almonte", "Pica", "Huara",
	}},
	{ID: 3, Nombre: "Antofagasta", Comunas: []string{
		"Antofagasta", "Mejillones", "Taltal", "Calama", "San Pedro de Atacama", "Tocopilla",
	}},
	{ID: 4, Nombre: "Atacama", Comunas: []string{
		"Copiapó", "Caldera", "Tierra Amarilla", "Chañaral", "Vallenar", "Huasco",
	}},
	{ID: 5, Nombre: "Coquimbo", Comunas: []string{
		"La Serena", "Coquimbo", "Andacollo", "Vicuña", "Illapel", "Los Vilos", "Ovalle", "Monte Patria",
	}},
	{ID: 6, Nombre: "Valparaíso", Comunas: []string{
		"Valparaíso", "Viña del Mar", "Concón", "Quilpué", "Villa Alemana", "Quillota",
		"San Antonio", "Casablanca", "Los Andes", "San Felipe", "Limache", "Olmué",
	}},
	{ID: 7, Nombre: "Metropolitana de Santiago", Comunas: []string{
		"Santiago", "Providencia", "Las Condes", "Vitacura", "Lo Barnechea", "Ñuñoa",
		"La Reina", "Macul", "Peñalolén", "La Florida", "Puente Alto", "San Joaquín",
		"San Miguel", "La Cisterna", "El Bosque", "La Granja", "La Pintana", "San Bernardo",
		"Maipú", "Cerrillos", "Estación Central", "Quinta Normal", "Lo Prado", "Pudahuel",
		"Cerro Navia", "Renca", "Quilicura", "Huechuraba", "Conchalí", "Independencia",
		"Recoleta", "Colina", "Lampa", "Peñaflor", "Talagante", "Melipilla", "Buin", "Paine",
	}},
	{ID: 8, Nombre: "Libertador General Bernardo O'Higgins", Comunas: []string{
		"Rancagua", "Machalí", "Graneros", "Rengo", "San Fernando", "Santa Cruz", "Pichilemu",
	}},
	{ID: 9, Nombre: "Maule", Comunas: []string{
		"Talca", "Maule", "San Clemente", "Curicó", "Molina", "Linares", "Parral", "Cauquenes", "Constitución",
	}},
	{ID: 10, Nombre: "Ñuble", Comunas: []string{
		"Chillán", "Chillán Viejo", "San Carlos", "Bulnes", "Quirihue", "Coelemu",
	}},
	{ID: 11, Nombre: "Biobío", Comunas: []string{
		"Concepción", "Talcahuano", "Hualpén", "San Pedro de la Paz", "Chiguayante",
		"Penco", "Tomé", "Coronel", "Lota", "Los Ángeles", "Cabrero", "Arauco", "Lebu",
	}},
	{ID: 12, Nombre: "La Araucanía", Comunas: []string{
		"Temuco", "Padre Las Casas", "Villarrica", "Pucón", "Angol", "Victoria", "Lautaro", "Nueva Imperial",
	}},
	{ID: 13, Nombre: "Los Ríos", Comunas: []string{
		"Valdivia", "Lanco", "Mariquina", "Los Lagos", "Panguipulli", "La Unión", "Río Bueno",
	}},
	{ID: 14, Nombre: "Los Lagos", Comunas: []string{
		"Puerto Montt", "Puerto Varas", "Llanquihue", "Frutillar", "Osorno", "Castro", "Ancud", "Quellón", "Chaitén",
	}},
	{ID: 15, Nombre: "Aysén del General Carlos Ibáñez del Campo", Comunas: []string{
		"Coyhaique", "Aysén", "Cisnes", "Chile Chico", "Cochrane",
	}},
	{ID: 16, Nombre: "Magallanes y de la Antártica Chilena", Comunas: []string{
		"Punta Arenas", "Puerto Natales", "Porvenir", "Cabo de Hornos",
	}},
}
