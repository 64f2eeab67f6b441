// Package chatbot answers site-visitor questions from a static decision tree.
package chatbot

// Option is one selectable choice shown to the visitor.
type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Node is a menu in the tree: a prompt, its options, and the leaf answers
// reachable from it.
type Node struct {
	Message string
	Options []Option
	Answers map[string]string
}

// Reply is what an interaction returns to the client.
type Reply struct {
	Message string   `json:"message"`
	Options []Option `json:"options"`
}

const mainMenu = "main_menu"

var backToMain = []Option{{Text: "Volver al Menú Principal", Value: mainMenu}}

// Respond resolves a selected option against the tree. Empty input or
// "main_menu" returns the main menu; a known menu returns its prompt; a leaf
// value returns its answer; anything else apologizes and re-offers the main
// menu.
func Respond(selected string) Reply {
	if selected == "" || selected == mainMenu {
		return menuReply(tree[mainMenu])
	}

	if node, ok := tree[selected]; ok {
		return menuReply(node)
	}

	for _, node := range tree {
		if answer, ok := node.Answers[selected]; ok {
			return Reply{Message: answer, Options: backToMain}
		}
	}

	return Reply{
		Message: "Lo siento, la opción seleccionada no es válida. Por favor, elige una de las opciones disponibles.",
		Options: tree[mainMenu].Options,
	}
}

func menuReply(node Node) Reply {
	options := node.Options
	if options == nil {
		options = []Option{}
	}
	return Reply{Message: node.Message, Options: options}
}

var tree = map[string]Node{
	mainMenu: {
		Message: "¡Hola! Soy tu asistente virtual del Parque Industrial San José. Por favor, selecciona una opción para comenzar:",
		Options: []Option{
			{Text: "Historia y Visión del Parque", Value: "historia"},
			{Text: "Ubicación y Accesos", Value: "ubicacion"},
			{Text: "Servicios e Infraestructura", Value: "servicios"},
			{Text: "Información de Contacto", Value: "contacto"},
			{Text: "Preguntas Frecuentes", Value: "faq"},
			{Text: "Salir / Finalizar Chat", Value: "exit"},
		},
	},
	"historia": {
		Message: "Has seleccionado 'Historia y Visión'. ¿Qué te gustaría saber específicamente?",
		Options: []Option{
			{Text: "Historia y Fundación", Value: "historia_fundacion"},
			{Text: "Misión y Visión", Value: "historia_vision"},
			{Text: "Volver al Menú Principal", Value: mainMenu},
		},
		Answers: map[string]string{
			"historia_fundacion": "El Parque Industrial San José fue fundado en el año 2005, visionado como un epicentro logístico e industrial clave para la Sabana de Occidente. Desde su concepción, ha crecido hasta convertirse en un referente de eficiencia y modernidad, facilitando la operación de empresas nacionales e internacionales gracias a su ubicación estratégica.",
			"historia_vision":    "Nuestra misión es proveer un ecosistema industrial de vanguardia en la Sabana de Occidente, impulsando la productividad y el crecimiento sostenible de las empresas que nos eligen. Nuestra visión es consolidarnos como el parque industrial líder en Colombia, reconocido por su excelencia operativa, compromiso ambiental y contribución al desarrollo socioeconómico de la región Cundinamarca.",
		},
	},
	"ubicacion": {
		Message: "Has seleccionado 'Ubicación y Accesos'.",
		Options: []Option{
			{Text: "Ver Dirección Exacta", Value: "ubicacion_direccion"},
			{Text: "Conexión Estratégica", Value: "ubicacion_conexion"},
			{Text: "Ver en Google Maps", Value: "ubicacion_mapa"},
			{Text: "Volver al Menú Principal", Value: mainMenu},
		},
		Answers: map[string]string{
			"ubicacion_direccion": "El Parque Industrial San José se localiza estratégicamente en la Vía Funza-Siberia, Km 2.5, en el municipio de Funza, Cundinamarca, Colombia. Este punto ofrece una conexión directa con las principales arterias de transporte de la región.",
			"ubicacion_conexion":  "Nuestra ubicación en la Vía Funza-Siberia es ideal: estamos a solo 15 minutos del Aeropuerto Internacional El Dorado, con acceso directo a la Calle 80 (Bogotá-Medellín) y a pocos kilómetros de la Autopista Sur (Corredor Bogotá-Girardot), facilitando la logística y distribución a nivel nacional e internacional.",
			"ubicacion_mapa":      "Puedes ver nuestra ubicación exacta en Google Maps y trazar tu ruta aquí: [https://maps.app.goo.gl/EJZzK4Z4Q7XpY7Xp7]. Simplemente haz clic en el enlace para abrir el mapa.",
		},
	},
	"servicios": {
		Message: "Has seleccionado 'Servicios e Infraestructura'. ¿Qué tipo de servicio te interesa?",
		Options: []Option{
			{Text: "Infraestructura General", Value: "servicios_infraestructura"},
			{Text: "Seguridad y Vigilancia", Value: "servicios_seguridad"},
			{Text: "Suministro de Energía y Agua", Value: "servicios_suministros"},
			{Text: "Telecomunicaciones de Última Generación", Value: "servicios_telecomunicaciones"},
			{Text: "Gestión Ambiental y Sostenibilidad", Value: "servicios_ambiental"},
			{Text: "Volver al Menú Principal", Value: mainMenu},
		},
		Answers: map[string]string{
			"servicios_infraestructura":    "Ofrecemos una infraestructura moderna de alta calidad: vías internas de doble carril totalmente pavimentadas, amplias zonas de maniobra y parqueo, alumbrado LED en todo el complejo, y una red de acueducto y alcantarillado optimizada para uso industrial.",
			"servicios_seguridad":          "La seguridad es nuestra prioridad. Contamos con un equipo de vigilancia privada 24/7, monitoreo centralizado con más de 150 cámaras CCTV de alta definición, control de acceso biométrico para vehículos y personal, y rondas perimetrales constantes. Tu inversión y operaciones están protegidas.",
			"servicios_suministros":        "Garantizamos un suministro robusto de energía eléctrica con subestaciones propias de alta capacidad (hasta 34.5 kV) y respaldo, minimizando interrupciones. Además, el abastecimiento de agua potable y la gestión de aguas residuales cumplen con los más altos estándares normativos.",
			"servicios_telecomunicaciones": "Acceso a una red de fibra óptica dedicada con múltiples proveedores y redundancia, asegurando conectividad de internet de alta velocidad y telefonía IP confiable para todas tus operaciones, fundamental para la industria 4.0.",
			"servicios_ambiental":          "Comprometidos con la sostenibilidad, implementamos programas de gestión de residuos sólidos, optimización del uso del agua y eficiencia energética. Contamos con certificaciones ambientales y promovemos prácticas responsables entre nuestras empresas.",
		},
	},
	"contacto": {
		Message: "Has seleccionado 'Información de Contacto'. ¿Cómo te gustaría contactarnos?",
		Options: []Option{
			{Text: "Teléfono Principal", Value: "contacto_telefono"},
			{Text: "Correo Electrónico Comercial", Value: "contacto_email"},
			{Text: "Programar una Visita", Value: "contacto_visita"},
			{Text: "Formulario Web", Value: "contacto_formulario"},
			{Text: "Volver al Menú Principal", Value: mainMenu},
		},
		Answers: map[string]string{
			"contacto_telefono":   "Puedes comunicarte con nuestro equipo comercial al +57 601 745 XXXX (número ficticio). Nuestro horario de atención es de Lunes a Viernes, de 8:00 AM a 5:30 PM.",
			"contacto_email":      "Para consultas comerciales y de disponibilidad, por favor escríbenos a comercial@pisanjose.com (dominio ficticio). Nos comprometemos a responderte en un plazo máximo de 1 día hábil.",
			"contacto_visita":     "Si deseas coordinar una visita guiada por el parque y conocer nuestros espacios, te invitamos a completar nuestro formulario de contacto en la web o llamarnos directamente para agendar una cita personalizada.",
			"contacto_formulario": "Puedes enviarnos tu consulta directamente a través de nuestro formulario de contacto en la web: [/contact]. Es la forma más rápida para una respuesta detallada.",
		},
	},
	"faq": {
		Message: "Has seleccionado 'Preguntas Frecuentes'. Aquí tienes algunas de las consultas más comunes:",
		Options: []Option{
			{Text: "¿Cuáles son los requisitos para instalar una empresa?", Value: "faq_requisitos"},
			{Text: "¿Hay espacios disponibles para alquiler o venta?", Value: "faq_disponibilidad"},
			{Text: "Opciones de Transporte Público y Acceso", Value: "faq_transporte"},
			{Text: "¿Qué empresas ya están ubicadas en el parque?", Value: "faq_empresas"},
			{Text: "Volver al Menú Principal", Value: mainMenu},
		},
		Answers: map[string]string{
			"faq_requisitos":     "Los requisitos para instalar una empresa en Parque Industrial San José incluyen: constitución legal de la empresa, cumplimiento de la normativa ambiental y de uso de suelo de Funza, presentación de un plan de negocio y la aprobación por parte de la administración del parque. Nuestro equipo comercial puede guiarte en cada paso.",
			"faq_disponibilidad": "Actualmente, contamos con disponibilidad de lotes urbanizados para construcción a la medida (desde 1,500 m²) y bodegas modulares ya construidas (desde 500 m²), tanto para alquiler como para venta. La disponibilidad específica varía, por lo que te recomendamos contactar a nuestro equipo comercial para un inventario actualizado.",
			"faq_transporte":     "El Parque Industrial San José es fácilmente accesible. Contamos con paradas de buses intermunicipales en la Vía Funza-Siberia y estamos en cercanía a rutas de transporte público que conectan con Bogotá y municipios aledaños como Mosquera y Madrid. Esto facilita el desplazamiento de personal y carga.",
			"faq_empresas":       "El Parque Industrial San José alberga a diversas empresas líderes en sectores como logística, manufactura ligera, distribución y tecnología. No podemos revelar nombres específicos por acuerdos de confidencialidad, pero la diversidad de nuestro portafolio es un testimonio de la versatilidad de nuestras instalaciones.",
		},
	},
	"exit": {
		Message: "Gracias por usar el asistente virtual de Parque Industrial San José. Si tienes más preguntas, no dudes en volver. ¡Hasta pronto!",
		Options: []Option{},
	},
}
